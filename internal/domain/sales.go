package domain

import "github.com/shopspring/decimal"

// Product — справочник продукции.
type Product struct {
	ID   int64
	Name string
}

// SalesRecord — строка истории продаж. Только для чтения.
type SalesRecord struct {
	PartnerID int64
	ProductID int64
	Quantity  int64
	Amount    decimal.Decimal
}

// ProductSales — продажи одного продукта партнёру.
type ProductSales struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	Amount      decimal.Decimal
}

// PartnerStats — агрегированная статистика продаж партнёра.
// Products упорядочены по сумме по убыванию, при равенстве — по ID продукта.
type PartnerStats struct {
	TotalQuantity int64
	TotalAmount   decimal.Decimal
	Products      []ProductSales
}

// EmptyPartnerStats — статистика партнёра без продаж.
func EmptyPartnerStats() PartnerStats {
	return PartnerStats{
		TotalAmount: decimal.Zero,
		Products:    []ProductSales{},
	}
}

// BreakdownTotals суммирует разбивку по продуктам.
func (s PartnerStats) BreakdownTotals() (int64, decimal.Decimal) {
	var qty int64
	amount := decimal.Zero
	for _, p := range s.Products {
		qty += p.Quantity
		amount = amount.Add(p.Amount)
	}
	return qty, amount
}

// Consistent проверяет, что итоги совпадают с суммой разбивки.
func (s PartnerStats) Consistent() bool {
	qty, amount := s.BreakdownTotals()
	return qty == s.TotalQuantity && amount.Equal(s.TotalAmount)
}
