package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/partners/internal/domain"
	"github.com/vladislavdragonenkov/partners/internal/service/auth"
	"github.com/vladislavdragonenkov/partners/internal/storage/memory"
)

// Демо-учётная запись in-memory хранилища.
const (
	DemoLogin    = "m1"
	DemoPassword = "secret"
)

type demoSale struct {
	partner, product int
	qty              int64
	amount           string
}

// SeedDemoData заполняет in-memory хранилище справочниками, партнёрами и продажами.
func SeedDemoData(store *memory.Store) error {
	hash, err := auth.LegacyMD5Hasher{}.Hash(DemoPassword)
	if err != nil {
		return err
	}
	if _, err := store.AddManager(domain.Manager{
		Login:        DemoLogin,
		PasswordHash: hash,
		FullName:     "Демо менеджер",
		Role:         "manager",
		Active:       true,
	}); err != nil {
		return err
	}

	typeIDs := make([]int64, 0, 4)
	for _, name := range []string{"ЗАО", "ООО", "ПАО", "ОАО"} {
		typeIDs = append(typeIDs, store.AddPartnerType(name))
	}

	productIDs := make([]int64, 0, 3)
	for _, name := range []string{"Паркетная доска Ясень темный", "Ламинат Дуб дымчато-белый", "Пробковое напольное покрытие"} {
		productIDs = append(productIDs, store.AddProduct(name))
	}

	repo := memory.NewPartnerRepository(store)
	partners := []domain.PartnerFields{
		{Name: "База Строитель", TypeID: domain.TypeIDPtr(typeIDs[0]), Director: "Иванова Александра Ивановна", Email: "aleksandraivanova@ml.ru", Phone: "493 123 45 67", LegalAddress: "652050, Кемеровская область, город Юрга, ул. Лесная, 15", INN: "2222455179", Rating: 7},
		{Name: "Паркет 29", TypeID: domain.TypeIDPtr(typeIDs[1]), Director: "Петров Василий Петрович", Email: "vppetrov@vl.ru", Phone: "987 123 56 78", LegalAddress: "164500, Архангельская область, город Северодвинск, ул. Строителей, 18", INN: "3333888520", Rating: 7},
		{Name: "Стройсервис", TypeID: domain.TypeIDPtr(typeIDs[2]), Director: "Соловьев Андрей Николаевич", Email: "ansolovev@st.ru", Phone: "812 223 32 00", LegalAddress: "188910, Ленинградская область, город Приморск, ул. Парковая, 21", INN: "4440391035", Rating: 7},
		{Name: "Ремонт и отделка", Director: "Воробьева Екатерина Валерьевна", Email: "ekaterina.vorobeva@ml.ru", Phone: "444 222 33 11", LegalAddress: "143960, Московская область, город Реутов, ул. Свободы, 51", INN: "1111520857", Rating: 5},
	}
	ids := make([]int64, 0, len(partners))
	for _, f := range partners {
		id, err := repo.Add(context.Background(), f)
		if err != nil {
			return fmt.Errorf("seed partner %q: %w", f.Name, err)
		}
		ids = append(ids, id)
	}

	for _, s := range []demoSale{
		{0, 0, 15500, "7750000.00"},
		{0, 1, 12350, "3705000.00"},
		{1, 0, 37400, "18700000.00"},
		{1, 2, 1250, "937500.00"},
		{2, 1, 35000, "10500000.00"},
		{2, 0, 7550, "3775000.00"},
		{2, 2, 7250, "5437500.00"},
	} {
		rec := domain.SalesRecord{
			PartnerID: ids[s.partner],
			ProductID: productIDs[s.product],
			Quantity:  s.qty,
			Amount:    decimal.RequireFromString(s.amount),
		}
		if err := store.RecordSale(rec); err != nil {
			return fmt.Errorf("seed sale: %w", err)
		}
	}
	return nil
}
