package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/rogtrack/rog-api/internal/constants"
	"github.com/rogtrack/rog-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.SuppAdd{},
		&models.SubInventory{},
		&models.Locator{},
		&models.Part{},
		&models.Document{},
		&models.Status{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestInventoryCodeScopedWithinParent(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewInventoryRepository(db)

	// Same subinventory code under two different suppadds.
	first := &models.SuppAdd{
		Code:          "MTM_STGE",
		SubInventorys: []models.SubInventory{{Code: "SHARED"}},
	}
	second := &models.SuppAdd{
		Code:          "MTM_RIP",
		SubInventorys: []models.SubInventory{{Code: "SHARED"}},
	}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("create first suppadd failed: %v", err)
	}
	if err := db.Create(second).Error; err != nil {
		t.Fatalf("create second suppadd failed: %v", err)
	}

	got, err := repo.GetSubInventoryByCode(first.ID, "SHARED")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got == nil || got.SuppAddID == nil || *got.SuppAddID != first.ID {
		t.Fatalf("lookup should resolve within the given suppadd, got %+v", got)
	}

	// Code present elsewhere must not resolve here.
	orphanParent := &models.SuppAdd{Code: "MTM_EMPTY"}
	if err := db.Create(orphanParent).Error; err != nil {
		t.Fatalf("create empty suppadd failed: %v", err)
	}
	missing, err := repo.GetSubInventoryByCode(orphanParent.ID, "SHARED")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("code from another suppadd must not resolve, got %+v", missing)
	}
}

func TestLocatorScopedWithinSubInventory(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewInventoryRepository(db)

	suppAdd := &models.SuppAdd{
		Code: "MTM_STGE",
		SubInventorys: []models.SubInventory{
			{Code: "M1234AA", Locators: []models.Locator{{Code: "A1"}}},
			{Code: "M1234AB"},
		},
	}
	if err := db.Create(suppAdd).Error; err != nil {
		t.Fatalf("create hierarchy failed: %v", err)
	}

	withLocator := suppAdd.SubInventorys[0]
	empty := suppAdd.SubInventorys[1]

	got, err := repo.GetLocatorByCode(withLocator.ID, "A1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got == nil {
		t.Fatalf("locator should resolve in owning subinventory")
	}

	missing, err := repo.GetLocatorByCode(empty.ID, "A1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("locator must not resolve outside its subinventory, got %+v", missing)
	}
}

func TestFindEligibleForTransition(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDocumentRepository(db)

	eligible := &models.Document{
		SDN:      "M2902812150001",
		Statuses: []models.Status{{DIC: constants.DicAS2}},
	}
	received := &models.Document{
		SDN:      "M2902812150002",
		Statuses: []models.Status{{DIC: constants.DicAS2}, {DIC: constants.DicD6T}},
	}
	bare := &models.Document{SDN: "M2902812150003"}
	for _, document := range []*models.Document{eligible, received, bare} {
		if err := db.Create(document).Error; err != nil {
			t.Fatalf("create document failed: %v", err)
		}
	}

	got, err := repo.FindEligibleForTransition("M2902812150001", constants.DicAS2, constants.DicD6T)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got == nil || got.ID != eligible.ID {
		t.Fatalf("document with AS2 and no D6T should be eligible, got %+v", got)
	}
	if len(got.Statuses) != 1 {
		t.Fatalf("status history should preload, got %d", len(got.Statuses))
	}

	for _, sdn := range []string{"M2902812150002", "M2902812150003", ""} {
		got, err := repo.FindEligibleForTransition(sdn, constants.DicAS2, constants.DicD6T)
		if err != nil {
			t.Fatalf("sdn %q: lookup failed: %v", sdn, err)
		}
		if got != nil {
			t.Fatalf("sdn %q should not be eligible, got %+v", sdn, got)
		}
	}
}

func TestStatusBulkCreate(t *testing.T) {
	db := setupRepositoryTest(t)
	documentRepo := NewDocumentRepository(db)
	statusRepo := NewStatusRepository(db)

	document := &models.Document{SDN: "M2902812150010"}
	if err := documentRepo.Create(document); err != nil {
		t.Fatalf("create document failed: %v", err)
	}

	qty := 2
	statuses := []models.Status{
		{DocumentID: document.ID, DIC: constants.DicAS2},
		{DocumentID: document.ID, DIC: constants.DicD6T, ReceivedQty: &qty},
	}
	if err := statusRepo.BulkCreate(statuses); err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}

	listed, err := statusRepo.ListByDocument(document.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("statuses want 2 got %d", len(listed))
	}

	count, err := statusRepo.CountByDocumentAndDic(document.ID, constants.DicD6T)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("d6t count want 1 got %d", count)
	}

	if err := statusRepo.BulkCreate(nil); err != nil {
		t.Fatalf("empty bulk create should be a no-op, got %v", err)
	}
}

func TestExistingSDNs(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDocumentRepository(db)

	if err := repo.BulkCreate([]models.Document{
		{SDN: "M2902812150020"},
		{SDN: "M2902812150021"},
	}); err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}

	existing, err := repo.ExistingSDNs([]string{"M2902812150020", "M2902812150021", "M2902812150099"})
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !existing["M2902812150020"] || !existing["M2902812150021"] {
		t.Fatalf("seeded sdns should report existing, got %v", existing)
	}
	if existing["M2902812150099"] {
		t.Fatalf("unknown sdn should not report existing")
	}
}

func TestDocumentListFilters(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDocumentRepository(db)

	suppAdd := &models.SuppAdd{Code: "MTM_STGE"}
	if err := db.Create(suppAdd).Error; err != nil {
		t.Fatalf("create suppadd failed: %v", err)
	}
	documents := []models.Document{
		{SDN: "M2902812150030", SuppAddID: &suppAdd.ID, Statuses: []models.Status{{DIC: constants.DicAS2}}},
		{SDN: "M2902812150031", Statuses: []models.Status{{DIC: constants.DicAS2}, {DIC: constants.DicD6T}}},
		{SDN: "X9999999999999"},
	}
	for i := range documents {
		if err := db.Create(&documents[i]).Error; err != nil {
			t.Fatalf("create document failed: %v", err)
		}
	}

	listed, total, err := repo.List(DocumentListFilter{Page: 1, PageSize: 10, DIC: constants.DicD6T})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(listed) != 1 || listed[0].SDN != "M2902812150031" {
		t.Fatalf("dic filter mismatch: total=%d listed=%v", total, listed)
	}

	listed, total, err = repo.List(DocumentListFilter{Page: 1, PageSize: 10, SuppAddCode: "MTM_STGE"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || listed[0].SDN != "M2902812150030" {
		t.Fatalf("suppadd filter mismatch: total=%d listed=%v", total, listed)
	}

	_, total, err = repo.List(DocumentListFilter{Page: 1, PageSize: 10, SDN: "M29028121500"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("sdn prefix filter want 2 got %d", total)
	}
}
