package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rogtrack/rog-api/internal/constants"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTransitionServiceTest(t *testing.T) (*TransitionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:transition_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
	models.DB = db
	documentRepo := repository.NewDocumentRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	return NewTransitionService(documentRepo, statusRepo, inventoryRepo), db
}

func createTestHierarchy(t *testing.T, db *gorm.DB) *models.SuppAdd {
	t.Helper()
	suppAdd := &models.SuppAdd{
		Code: "MTM_STGE",
		SubInventorys: []models.SubInventory{
			{
				Code: "M1234AA",
				Locators: []models.Locator{
					{Code: "A1"},
				},
			},
		},
	}
	if err := db.Create(suppAdd).Error; err != nil {
		t.Fatalf("create hierarchy failed: %v", err)
	}
	return suppAdd
}

func createTestDocument(t *testing.T, db *gorm.DB, sdn string, suppAdd *models.SuppAdd, dics ...string) *models.Document {
	t.Helper()
	projected := 4
	document := &models.Document{SDN: sdn, AAC: "M29028"}
	if suppAdd != nil {
		document.SuppAddID = &suppAdd.ID
	}
	for _, dic := range dics {
		status := models.Status{
			DIC:                dic,
			StatusDate:         time.Now(),
			KeyAndTransmitDate: time.Now(),
		}
		if dic == constants.DicAS2 {
			status.ProjectedQty = &projected
		}
		if dic == constants.DicD6T {
			received := 3
			status.ReceivedQty = &received
			status.ProjectedQty = &projected
		}
		document.Statuses = append(document.Statuses, status)
	}
	if err := db.Create(document).Error; err != nil {
		t.Fatalf("create document failed: %v", err)
	}
	return document
}

func countStatuses(t *testing.T, db *gorm.DB, dic string) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Status{}).Where("dic = ?", dic).Count(&count).Error; err != nil {
		t.Fatalf("count statuses failed: %v", err)
	}
	return count
}

func TestSubmitD6TSuccess(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	document := createTestDocument(t, db, "M2902812150001", suppAdd, constants.DicAS2)

	statuses, err := svc.SubmitD6T([]D6TRequest{{
		SDN:              "M2902812150001",
		SubInventoryCode: "M1234AA",
		LocatorCode:      "A1",
		ReceivedQty:      4,
		ReceivedBy:       "cpl.smith",
	}})
	if err != nil {
		t.Fatalf("SubmitD6T failed: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("statuses want 1 got %d", len(statuses))
	}

	created := statuses[0]
	if created.DocumentID != document.ID {
		t.Fatalf("document_id want %d got %d", document.ID, created.DocumentID)
	}
	if created.DIC != constants.DicD6T {
		t.Fatalf("dic want D6T got %s", created.DIC)
	}
	if created.SubInventoryID == nil || created.LocatorID == nil {
		t.Fatalf("inventory ids should be resolved, got %v / %v", created.SubInventoryID, created.LocatorID)
	}
	if created.ReceivedQty == nil || *created.ReceivedQty != 4 {
		t.Fatalf("received_qty want 4 got %v", created.ReceivedQty)
	}
	if created.ProjectedQty == nil || *created.ProjectedQty != 4 {
		t.Fatalf("projected_qty should carry over from AS2, got %v", created.ProjectedQty)
	}
	if got := countStatuses(t, db, constants.DicD6T); got != 1 {
		t.Fatalf("persisted d6t rows want 1 got %d", got)
	}
}

func TestSubmitD6TWithoutLocator(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150002", suppAdd, constants.DicAS2)

	statuses, err := svc.SubmitD6T([]D6TRequest{{
		SDN:              "M2902812150002",
		SubInventoryCode: "M1234AA",
		ReceivedQty:      2,
	}})
	if err != nil {
		t.Fatalf("SubmitD6T failed: %v", err)
	}
	if statuses[0].LocatorID != nil {
		t.Fatalf("locator should stay empty when not provided")
	}
}

func TestSubmitD6TNotEligible(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	// No AS2 status.
	createTestDocument(t, db, "M2902812150003", suppAdd)
	// AS2 present but already received.
	createTestDocument(t, db, "M2902812150004", suppAdd, constants.DicAS2, constants.DicD6T)

	for _, sdn := range []string{"M2902812150003", "M2902812150004", "NOSUCHSDN"} {
		_, err := svc.SubmitD6T([]D6TRequest{{
			SDN:              sdn,
			SubInventoryCode: "M1234AA",
			ReceivedQty:      1,
		}})
		if !errors.Is(err, ErrDocumentNotEligible) {
			t.Fatalf("sdn %s: want ErrDocumentNotEligible got %v", sdn, err)
		}
	}
}

func TestSubmitD6TUnknownSubInventory(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150005", suppAdd, constants.DicAS2)

	_, err := svc.SubmitD6T([]D6TRequest{{
		SDN:              "M2902812150005",
		SubInventoryCode: "WRONG",
		ReceivedQty:      1,
	}})
	if !errors.Is(err, ErrSubInventoryNotFound) {
		t.Fatalf("want ErrSubInventoryNotFound got %v", err)
	}
	if got := countStatuses(t, db, constants.DicD6T); got != 0 {
		t.Fatalf("no rows should persist on failure, got %d", got)
	}
}

func TestSubmitD6TUnknownLocator(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150006", suppAdd, constants.DicAS2)

	_, err := svc.SubmitD6T([]D6TRequest{{
		SDN:              "M2902812150006",
		SubInventoryCode: "M1234AA",
		LocatorCode:      "Z9",
		ReceivedQty:      1,
	}})
	if !errors.Is(err, ErrLocatorNotFound) {
		t.Fatalf("want ErrLocatorNotFound got %v", err)
	}
}

func TestSubmitD6TInvalidQty(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150007", suppAdd, constants.DicAS2)

	for _, qty := range []int{0, -2} {
		_, err := svc.SubmitD6T([]D6TRequest{{
			SDN:              "M2902812150007",
			SubInventoryCode: "M1234AA",
			ReceivedQty:      qty,
		}})
		if !errors.Is(err, ErrReceivedQtyInvalid) {
			t.Fatalf("qty %d: want ErrReceivedQtyInvalid got %v", qty, err)
		}
	}
}

func TestSubmitD6TBatchAllOrNothing(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150010", suppAdd, constants.DicAS2)
	createTestDocument(t, db, "M2902812150011", suppAdd, constants.DicAS2)
	createTestDocument(t, db, "M2902812150012", suppAdd, constants.DicAS2)

	_, err := svc.SubmitD6T([]D6TRequest{
		{SDN: "M2902812150010", SubInventoryCode: "M1234AA", ReceivedQty: 1},
		{SDN: "M2902812150011", SubInventoryCode: "WRONG", ReceivedQty: 1},
		{SDN: "M2902812150012", SubInventoryCode: "M1234AA", ReceivedQty: 1},
	})
	if !errors.Is(err, ErrSubInventoryNotFound) {
		t.Fatalf("want ErrSubInventoryNotFound got %v", err)
	}
	if got := countStatuses(t, db, constants.DicD6T); got != 0 {
		t.Fatalf("failed batch must persist zero rows, got %d", got)
	}
}

func TestSubmitD6TEmptyBatch(t *testing.T) {
	svc, _ := setupTransitionServiceTest(t)
	if _, err := svc.SubmitD6T(nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("want ErrEmptyBatch got %v", err)
	}
}

func TestSubmitCORSuccess(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	document := createTestDocument(t, db, "M2902812150020", suppAdd, constants.DicAS2, constants.DicD6T)

	statuses, err := svc.SubmitCOR([]CORRequest{{
		SDN:        "M2902812150020",
		ReceivedBy: "sgt.jones",
	}})
	if err != nil {
		t.Fatalf("SubmitCOR failed: %v", err)
	}
	created := statuses[0]
	if created.DocumentID != document.ID || created.DIC != constants.DicCOR {
		t.Fatalf("unexpected status %+v", created)
	}
	if created.ReceivedQty == nil || *created.ReceivedQty != 3 {
		t.Fatalf("received_qty should carry over from D6T, got %v", created.ReceivedQty)
	}
	if created.ProjectedQty == nil || *created.ProjectedQty != 4 {
		t.Fatalf("projected_qty should carry over from D6T, got %v", created.ProjectedQty)
	}
}

func TestSubmitCORNotEligible(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	// Not yet received.
	createTestDocument(t, db, "M2902812150021", suppAdd, constants.DicAS2)
	// Already confirmed.
	createTestDocument(t, db, "M2902812150022", suppAdd, constants.DicAS2, constants.DicD6T, constants.DicCOR)

	for _, sdn := range []string{"M2902812150021", "M2902812150022"} {
		_, err := svc.SubmitCOR([]CORRequest{{SDN: sdn, ReceivedBy: "sgt.jones"}})
		if !errors.Is(err, ErrDocumentNotEligible) {
			t.Fatalf("sdn %s: want ErrDocumentNotEligible got %v", sdn, err)
		}
	}
}

func TestSubmitCORRequiresReceivedBy(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150023", suppAdd, constants.DicAS2, constants.DicD6T)

	_, err := svc.SubmitCOR([]CORRequest{{SDN: "M2902812150023"}})
	if !errors.Is(err, ErrReceivedByRequired) {
		t.Fatalf("want ErrReceivedByRequired got %v", err)
	}
	if got := countStatuses(t, db, constants.DicCOR); got != 0 {
		t.Fatalf("no rows should persist on failure, got %d", got)
	}
}

func TestSubmitD6TMissingSuppAdd(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150030", nil, constants.DicAS2)

	_, err := svc.SubmitD6T([]D6TRequest{{
		SDN:              "M2902812150030",
		SubInventoryCode: "M1234AA",
		ReceivedQty:      1,
	}})
	if !errors.Is(err, ErrSuppAddMissing) {
		t.Fatalf("want ErrSuppAddMissing got %v", err)
	}
}

func TestSubmitOneWrappers(t *testing.T) {
	svc, db := setupTransitionServiceTest(t)
	suppAdd := createTestHierarchy(t, db)
	createTestDocument(t, db, "M2902812150040", suppAdd, constants.DicAS2)

	d6t, err := svc.SubmitOneD6T(D6TRequest{
		SDN:              "M2902812150040",
		SubInventoryCode: "M1234AA",
		LocatorCode:      "A1",
		ReceivedQty:      2,
		ReceivedBy:       "cpl.smith",
	})
	if err != nil {
		t.Fatalf("SubmitOneD6T failed: %v", err)
	}
	if d6t == nil || d6t.DIC != constants.DicD6T {
		t.Fatalf("unexpected d6t status %+v", d6t)
	}

	cor, err := svc.SubmitOneCOR(CORRequest{SDN: "M2902812150040", ReceivedBy: "sgt.jones"})
	if err != nil {
		t.Fatalf("SubmitOneCOR failed: %v", err)
	}
	if cor == nil || cor.DIC != constants.DicCOR {
		t.Fatalf("unexpected cor status %+v", cor)
	}
	if cor.ReceivedQty == nil || *cor.ReceivedQty != 2 {
		t.Fatalf("cor should carry the d6t received quantity, got %+v", cor.ReceivedQty)
	}
}
