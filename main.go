package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pickemPool/models"
	"pickemPool/scheduler"
	"pickemPool/services/common"
	"pickemPool/services/contestService"
	"pickemPool/services/paymentService"
	"pickemPool/services/storeService"
	"pickemPool/web"
)

var db *gorm.DB

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	connString := os.Getenv("MYSQL_URL")
	if connString == "" {
		log.Fatalf("MYSQL_URL not set in environment variables")
	}

	dsn := connString
	if parsed, err := dburl.Parse(connString); err == nil {
		dsn = parsed.DSN
	}

	db, err = gorm.Open(mysql.Open(dsn+"?charset=utf8mb4&parseTime=True&loc=Local"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Contest{},
		&models.Game{},
		&models.Entry{},
		&models.Pick{},
		&models.WinnerRecord{},
		&models.RefundRecord{},
		&models.PaymentRequest{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func main() {
	cfg := loadResolutionConfig()
	paymentTTL := time.Duration(envInt("PAYMENT_TTL_MINUTES", 15)) * time.Minute

	var session *discordgo.Session
	token := os.Getenv("DISCORD_BOT_TOKEN")
	announceChannel := os.Getenv("DISCORD_ANNOUNCE_CHANNEL")
	if token != "" && announceChannel != "" {
		var err error
		session, err = discordgo.New("Bot " + token)
		if err != nil {
			log.Fatalf("Error creating Discord session: %v", err)
		}
		if err = session.Open(); err != nil {
			log.Fatalf("Error opening Discord session: %v", err)
		}
		defer func(session *discordgo.Session) {
			err := session.Close()
			if err != nil {

			}
		}(session)
	}

	store := storeService.NewGormStore(db)
	provider := paymentService.NewXummProvider(
		os.Getenv("XRPL_POOL_ADDRESS"),
		envOrDefault("XRPL_TOKEN_CURRENCY", "PKM"),
		os.Getenv("XRPL_TOKEN_ISSUER"),
	)

	scheduler.SetupCron(session, db, store, cfg, announceChannel)

	handler := web.NewHandler(db, store, provider, cfg, paymentTTL, session, announceChannel)
	port := envOrDefault("PORT", "8080")
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           web.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	log.Printf("Pick'em service is running on :%s. Press CTRL+C to exit.", port)
	log.Fatal(server.ListenAndServe())
}

func loadResolutionConfig() contestService.Config {
	weights := contestService.DefaultPrizeWeights
	if raw := os.Getenv("PRIZE_WEIGHTS"); raw != "" {
		parsed, err := common.ParseWeights(raw)
		if err != nil {
			log.Fatalf("Invalid PRIZE_WEIGHTS: %v", err)
		}
		weights = parsed
	}

	return contestService.Config{
		EntryFee:            int64(envInt("ENTRY_FEE", 50)),
		PrizeWeights:        weights,
		MinEntries:          envInt("MIN_ENTRIES", 4),
		AllowPartialResults: os.Getenv("ALLOW_PARTIAL_RESULTS") == "true",
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}
