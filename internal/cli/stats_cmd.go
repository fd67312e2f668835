package cli

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type productSalesView struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

type partnerStatsView struct {
	PartnerID     int64              `json:"partner_id"`
	TotalQuantity int64              `json:"total_quantity"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Products      []productSalesView `json:"products"`
}

func newStatsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats PARTNER_ID",
		Short: "Show partner sales totals and per-product breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := e.operationContext(cmd)
			defer cancel()
			ctx, rt, err := e.authenticate(ctx)
			if err != nil {
				return err
			}

			stats, err := rt.Sales.PartnerStats(ctx, id)
			if err != nil {
				return err
			}

			view := partnerStatsView{
				PartnerID:     id,
				TotalQuantity: stats.TotalQuantity,
				TotalAmount:   stats.TotalAmount,
				Products:      make([]productSalesView, 0, len(stats.Products)),
			}
			for _, p := range stats.Products {
				view.Products = append(view.Products, productSalesView(p))
			}
			if getOutputFormat(cmd) == outputJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}

			rows := make([][]string, 0, len(view.Products)+1)
			for _, p := range view.Products {
				rows = append(rows, []string{
					strconv.FormatInt(p.ProductID, 10), p.ProductName,
					strconv.FormatInt(p.Quantity, 10), p.Amount.StringFixed(2),
				})
			}
			rows = append(rows, []string{"", "TOTAL", strconv.FormatInt(view.TotalQuantity, 10), view.TotalAmount.StringFixed(2)})
			return printTable(cmd.OutOrStdout(), []string{"PRODUCT ID", "PRODUCT", "QUANTITY", "AMOUNT"}, rows)
		},
	}
}
