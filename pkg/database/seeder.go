package database

import (
	"log"

	"coffeeshop-app/config"
	"coffeeshop-app/internal/models"
	"coffeeshop-app/internal/utils"

	"gorm.io/gorm"
)

func SeedRolesAndAdmin() {
	roles := []string{"admin", "manager", "barista"}
	for _, r := range roles {
		var role models.Role
		if err := DB.FirstOrCreate(&role, models.Role{Name: r}).Error; err != nil {
			log.Printf("Failed to seed role %s: %v", r, err)
		}
	}

	var adminRole models.Role
	DB.Where("name = ?", "admin").First(&adminRole)

	var adminUser models.User
	if err := DB.Where("employee_id = ?", config.AppConfig.Defaults.AdminEmployeeID).First(&adminUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashedPassword, _ := utils.HashPassword(config.AppConfig.Defaults.AdminPassword)
			admin := models.User{
				EmployeeID:   config.AppConfig.Defaults.AdminEmployeeID,
				Username:     "Shop Admin",
				PasswordHash: hashedPassword,
				RoleID:       adminRole.ID,
				IsActive:     true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("Failed to seed admin user: %v", err)
			} else {
				log.Println("Admin user seeded successfully.")
			}
		}
	}
}

// SeedMenuCategories creates the base coffee-shop categories when the menu
// is empty, so a fresh install has something to hang products on.
func SeedMenuCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "coffee", Description: "Espresso based drinks and filter coffee"},
		{Name: "tea", Description: "Loose leaf and iced teas"},
		{Name: "pastry", Description: "Baked goods"},
		{Name: "sandwich", Description: "Fresh sandwiches"},
		{Name: "drink", Description: "Juices and soft drinks"},
	}
	for _, cat := range categories {
		if err := DB.Create(&cat).Error; err != nil {
			log.Printf("Failed to seed category %s: %v", cat.Name, err)
		}
	}
	log.Println("Menu categories seeded.")
}
