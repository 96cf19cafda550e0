package main

import (
	"time"

	"github.com/rogtrack/rog-api/internal/config"
	"github.com/rogtrack/rog-api/internal/constants"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/models"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDicCatalog(); err != nil {
		stdLog.Fatalf("Failed to seed dic catalog: %v", err)
	}

	if err := models.InitDefaultUser("", ""); err != nil {
		stdLog.Printf("Failed to seed default user: %v", err)
	}

	// Address types for document routing.
	for _, addressType := range []string{constants.AddressTypeShipTo, constants.AddressTypeHolder} {
		var existing models.AddressType
		if err := models.DB.Where("type = ?", addressType).First(&existing).Error; err != nil {
			if err := models.DB.Create(&models.AddressType{Type: addressType}).Error; err != nil {
				stdLog.Printf("Failed to create address type %s: %v", addressType, err)
			} else {
				stdLog.Printf("Created address type: %s", addressType)
			}
		}
	}

	// Warehouse hierarchy.
	suppAdds := []models.SuppAdd{
		{
			Code: "MTM_STGE",
			Desc: "Maintenance staging",
			SubInventorys: []models.SubInventory{
				{
					Code: "M1234AA",
					Locators: []models.Locator{
						{Code: "A1"},
						{Code: "A2"},
					},
				},
				{
					Code: "M1234AB",
					Locators: []models.Locator{
						{Code: "B1"},
					},
				},
			},
		},
		{
			Code: "MTM_RIP",
			Desc: "Repairable issue point",
			SubInventorys: []models.SubInventory{
				{
					Code: "R5678CC",
					Locators: []models.Locator{
						{Code: "C1"},
					},
				},
			},
		},
	}
	for _, suppAdd := range suppAdds {
		var existing models.SuppAdd
		if err := models.DB.Where("code = ?", suppAdd.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&suppAdd).Error; err != nil {
				stdLog.Printf("Failed to create suppadd %s: %v", suppAdd.Code, err)
			} else {
				stdLog.Printf("Created suppadd: %s", suppAdd.Code)
			}
		} else {
			stdLog.Printf("Suppadd already exists: %s", suppAdd.Code)
		}
	}

	// Part catalog samples.
	parts := []models.Part{
		{
			NSN:   "5330014654421",
			Nomen: "PACKING, PREFORMED",
			UOI:   "EA",
			Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(12.75)),
			SAC:   "1",
		},
		{
			NSN:   "2540015824585",
			Nomen: "SEAT, VEHICULAR",
			UOI:   "EA",
			Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(486.20)),
			SAC:   "1",
		},
	}
	for _, part := range parts {
		var existing models.Part
		if err := models.DB.Where("nsn = ?", part.NSN).First(&existing).Error; err != nil {
			if err := models.DB.Create(&part).Error; err != nil {
				stdLog.Printf("Failed to create part %s: %v", part.NSN, err)
			} else {
				stdLog.Printf("Created part: %s", part.NSN)
			}
		}
	}

	// Demo documents awaiting receipt.
	var stge models.SuppAdd
	if err := models.DB.Where("code = ?", "MTM_STGE").First(&stge).Error; err != nil {
		stdLog.Fatalf("Failed to load seeded suppadd: %v", err)
	}
	var firstPart models.Part
	if err := models.DB.Where("nsn = ?", "5330014654421").First(&firstPart).Error; err != nil {
		stdLog.Fatalf("Failed to load seeded part: %v", err)
	}

	projected := 4
	documents := []models.Document{
		{SDN: "M2902812150001", AAC: "M29028"},
		{SDN: "M2902812160001", AAC: "M29028"},
		{SDN: "M2902812160002", AAC: "M29028"},
	}
	for _, document := range documents {
		var existing models.Document
		if err := models.DB.Where("sdn = ?", document.SDN).First(&existing).Error; err == nil {
			stdLog.Printf("Document already exists: %s", document.SDN)
			continue
		}
		document.SuppAddID = &stge.ID
		document.PartID = &firstPart.ID
		document.Statuses = []models.Status{
			{
				DIC:                constants.DicAS2,
				StatusDate:         time.Now().AddDate(0, 0, -3),
				KeyAndTransmitDate: time.Now().AddDate(0, 0, -3),
				ProjectedQty:       &projected,
			},
		}
		if err := models.DB.Create(&document).Error; err != nil {
			stdLog.Printf("Failed to create document %s: %v", document.SDN, err)
		} else {
			stdLog.Printf("Created document: %s", document.SDN)
		}
	}

	stdLog.Printf("Seed complete")
}
