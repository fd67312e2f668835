package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/partners/internal/domain"
)

type partnerView struct {
	ID           int64  `json:"id"`
	TypeID       *int64 `json:"type_id,omitempty"`
	TypeName     string `json:"type_name"`
	Name         string `json:"name"`
	Director     string `json:"director"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LegalAddress string `json:"legal_address"`
	INN          string `json:"inn"`
	Rating       int    `json:"rating"`
	HasLogo      bool   `json:"has_logo"`
}

func toPartnerView(p domain.Partner) partnerView {
	return partnerView{
		ID:           p.ID,
		TypeID:       p.TypeID,
		TypeName:     p.DisplayTypeName(),
		Name:         p.Name,
		Director:     p.Director,
		Email:        p.Email,
		Phone:        p.Phone,
		LegalAddress: p.LegalAddress,
		INN:          p.INN,
		Rating:       p.Rating,
		HasLogo:      len(p.Logo) > 0,
	}
}

func newPartnersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "List, show, add and update partners",
	}
	cmd.AddCommand(newPartnersListCmd(e))
	cmd.AddCommand(newPartnerTypesCmd(e))
	cmd.AddCommand(newPartnerShowCmd(e))
	cmd.AddCommand(newPartnerAddCmd(e))
	cmd.AddCommand(newPartnerUpdateCmd(e))
	return cmd
}

func newPartnersListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List partners ordered by name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := e.operationContext(cmd)
			defer cancel()
			ctx, rt, err := e.authenticate(ctx)
			if err != nil {
				return err
			}

			partners, err := rt.Partners.List(ctx)
			if err != nil {
				return err
			}

			views := make([]partnerView, 0, len(partners))
			for _, p := range partners {
				views = append(views, toPartnerView(p))
			}
			if getOutputFormat(cmd) == outputJSON {
				return printJSON(cmd.OutOrStdout(), views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10), v.TypeName, v.Name, v.Director, v.Phone, strconv.Itoa(v.Rating),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "TYPE", "NAME", "DIRECTOR", "PHONE", "RATING"}, rows)
		},
	}
}

func newPartnerTypesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List partner types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := e.operationContext(cmd)
			defer cancel()
			ctx, rt, err := e.authenticate(ctx)
			if err != nil {
				return err
			}

			types, err := rt.Partners.Types(ctx)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == outputJSON {
				out := make([]map[string]any, 0, len(types))
				for _, t := range types {
					out = append(out, map[string]any{"id": t.ID, "name": t.Name})
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			rows := make([][]string, 0, len(types))
			for _, t := range types {
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Name})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)
		},
	}
}

func newPartnerShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show PARTNER_ID",
		Short: "Show a single partner",
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

			p, err := rt.Partners.Get(ctx, id)
			if err != nil {
				return err
			}
			return printPartner(cmd, toPartnerView(p))
		},
	}
}

// partnerFlags — поля формы партнёра.
type partnerFlags struct {
	name, director, email, phone, address, inn string
	typeID                                     int64
	rating                                     int
}

func (f *partnerFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "Partner name")
	flags.Int64Var(&f.typeID, "type-id", 0, "Partner type id (0 clears the type)")
	flags.StringVar(&f.director, "director", "", "Director full name")
	flags.StringVar(&f.email, "email", "", "Contact email")
	flags.StringVar(&f.phone, "phone", "", "Contact phone")
	flags.StringVar(&f.address, "address", "", "Legal address")
	flags.StringVar(&f.inn, "inn", "", "Taxpayer id (INN)")
	flags.IntVar(&f.rating, "rating", 0, "Rating from 1 to 10")
}

// apply переносит в fields только явно заданные флаги.
func (f *partnerFlags) apply(cmd *cobra.Command, fields domain.PartnerFields) domain.PartnerFields {
	changed := cmd.Flags().Changed
	if changed("name") {
		fields.Name = f.name
	}
	if changed("type-id") {
		fields.TypeID = nil
		if f.typeID != 0 {
			fields.TypeID = domain.TypeIDPtr(f.typeID)
		}
	}
	if changed("director") {
		fields.Director = f.director
	}
	if changed("email") {
		fields.Email = f.email
	}
	if changed("phone") {
		fields.Phone = f.phone
	}
	if changed("address") {
		fields.LegalAddress = f.address
	}
	if changed("inn") {
		fields.INN = f.inn
	}
	if changed("rating") {
		fields.Rating = f.rating
	}
	return fields
}

func newPartnerAddCmd(e *env) *cobra.Command {
	var f partnerFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a partner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := e.operationContext(cmd)
			defer cancel()
			ctx, rt, err := e.authenticate(ctx)
			if err != nil {
				return err
			}

			id, err := rt.Partners.Add(ctx, f.apply(cmd, domain.PartnerFields{}))
			if err != nil {
				return err
			}
			p, err := rt.Partners.Get(ctx, id)
			if err != nil {
				return err
			}
			return printPartner(cmd, toPartnerView(p))
		},
	}
	f.register(cmd)
	return cmd
}

func newPartnerUpdateCmd(e *env) *cobra.Command {
	var f partnerFlags

	cmd := &cobra.Command{
		Use:   "update PARTNER_ID",
		Short: "Update a partner; omitted flags keep their current values",
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

			current, err := rt.Partners.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := rt.Partners.Update(ctx, id, f.apply(cmd, current.Fields())); err != nil {
				return err
			}
			updated, err := rt.Partners.Get(ctx, id)
			if err != nil {
				return err
			}
			return printPartner(cmd, toPartnerView(updated))
		},
	}
	f.register(cmd)
	return cmd
}

func printPartner(cmd *cobra.Command, v partnerView) error {
	if getOutputFormat(cmd) == outputJSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	rows := [][]string{
		{"ID", strconv.FormatInt(v.ID, 10)},
		{"Type", v.TypeName},
		{"Name", v.Name},
		{"Director", v.Director},
		{"Email", v.Email},
		{"Phone", v.Phone},
		{"Address", v.LegalAddress},
		{"INN", v.INN},
		{"Rating", strconv.Itoa(v.Rating)},
	}
	return printTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, rows)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid partner id %q", domain.ErrValidation, raw)
	}
	return id, nil
}
