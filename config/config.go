package config

import (
	"log"

	"coffeeshop-app/internal/models"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Defaults DefaultsConfig
	Loyalty  LoyaltyConfig
	Site     models.SiteInfo
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type DefaultsConfig struct {
	AdminPassword   string `mapstructure:"admin_password"`
	AdminEmployeeID string `mapstructure:"admin_employee_id"`
	BaristaPrefix   string `mapstructure:"barista_prefix"`
	ManagerPrefix   string `mapstructure:"manager_prefix"`
	ReceiptPrefix   string `mapstructure:"receipt_prefix"`
	ShopName        string `mapstructure:"shop_name"`
	ShopAddress     string `mapstructure:"shop_address"`
	ShopPhone       string `mapstructure:"shop_phone"`
}

// LoyaltyConfig holds the tenant-configurable loyalty program constants.
type LoyaltyConfig struct {
	PointsPerPurchase  int `mapstructure:"points_per_purchase"`
	RewardThreshold    int `mapstructure:"reward_threshold"`
	RewardValidityDays int `mapstructure:"reward_validity_days"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("LOYALTY_POINTS_PER_PURCHASE", 1)
	viper.SetDefault("LOYALTY_REWARD_THRESHOLD", 10)
	viper.SetDefault("LOYALTY_REWARD_VALIDITY_DAYS", 30)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Defaults: DefaultsConfig{
			AdminPassword:   viper.GetString("ADMIN_PASSWORD"),
			AdminEmployeeID: viper.GetString("ADMIN_EMPLOYEE_ID"),
			BaristaPrefix:   viper.GetString("BARISTA_PREFIX"),
			ManagerPrefix:   viper.GetString("MANAGER_PREFIX"),
			ReceiptPrefix:   viper.GetString("RECEIPT_PREFIX"),
			ShopName:        viper.GetString("SHOP_NAME"),
			ShopAddress:     viper.GetString("SHOP_ADDRESS"),
			ShopPhone:       viper.GetString("SHOP_PHONE"),
		},
		Loyalty: LoyaltyConfig{
			PointsPerPurchase:  viper.GetInt("LOYALTY_POINTS_PER_PURCHASE"),
			RewardThreshold:    viper.GetInt("LOYALTY_REWARD_THRESHOLD"),
			RewardValidityDays: viper.GetInt("LOYALTY_REWARD_VALIDITY_DAYS"),
		},
	}

	// Site info comes from a separate TOML file so it can be edited without
	// touching secrets.
	siteViper := viper.New()
	siteViper.SetConfigFile("config/config.toml")
	siteViper.SetConfigType("toml")
	if err := siteViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using empty site info: %v", err)
	} else {
		if err := siteViper.UnmarshalKey("site", &AppConfig.Site); err != nil {
			log.Printf("Error: Failed to unmarshal site info from TOML: %v", err)
		}
	}

	log.Printf("Configuration loaded:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- Loyalty: %d point(s)/purchase, reward at %d, valid %d days",
		AppConfig.Loyalty.PointsPerPurchase,
		AppConfig.Loyalty.RewardThreshold,
		AppConfig.Loyalty.RewardValidityDays)
}
