package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var (
	JwtSecret  string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	ServerPort string
	Issuer     string

	ResendAPIKey   string
	ResendEndpoint string
	MailFrom       string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	CatalogPath string
	Catalog     ProgrammeCatalog

	IsProduction bool
)

// ProgrammeCatalog holds the form option lists and key dates shown to
// applicants. Loaded from a YAML file so the programme team can edit it
// without a redeploy.
type ProgrammeCatalog struct {
	Name         string   `yaml:"name" json:"name"`
	Organization string   `yaml:"organization" json:"organization"`
	Subjects     []string `yaml:"subjects" json:"subjects"`
	YearOptions  []string `yaml:"year_options" json:"year_options"`
	Availability []string `yaml:"availability" json:"availability"`
	Referral     []string `yaml:"referral_sources" json:"referral_sources"`
	Dates        struct {
		ApplicationDeadline string `yaml:"application_deadline" json:"application_deadline"`
		InterviewPeriod     string `yaml:"interview_period" json:"interview_period"`
		TrainingDates       string `yaml:"training_dates" json:"training_dates"`
		ProgrammeDates      string `yaml:"programme_dates" json:"programme_dates"`
	} `yaml:"dates" json:"dates"`
}

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "camp_portal")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("Issuer", "camp-portal")
	IsProduction = getEnv("APP_ENV", "development") == "production"

	ResendAPIKey = getEnv("RESEND_API_KEY", "")
	ResendEndpoint = getEnv("RESEND_ENDPOINT", "https://api.resend.com")
	MailFrom = getEnv("MAIL_FROM", "Cambridge Tutor Programme <noreply@jianshanacademy.com>")

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "offer-letters")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	CatalogPath = getEnv("CATALOG_PATH", "configs/catalog.yaml")
	if err := LoadCatalog(CatalogPath); err != nil {
		log.Printf("Failed to load programme catalog from %s: %v (using defaults)", CatalogPath, err)
		Catalog = defaultCatalog()
	}
}

func LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var catalog ProgrammeCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return err
	}
	Catalog = catalog
	return nil
}

func defaultCatalog() ProgrammeCatalog {
	c := ProgrammeCatalog{
		Name:         "Cambridge Academic Mentoring Programme",
		Organization: "Jianshan Academy",
		Subjects: []string{
			"Mathematics", "Physics", "Chemistry", "Biology", "Computer Science",
			"Economics", "History", "English Literature", "Philosophy", "Psychology",
			"Engineering", "Medicine", "Law", "Other",
		},
		YearOptions: []string{
			"Year 1 (Undergraduate)", "Year 2 (Undergraduate)", "Year 3 (Undergraduate)",
			"Year 4 (Undergraduate)", "Masters", "PhD", "Postdoc", "Recent Graduate",
		},
		Availability: []string{
			"July – Full Month", "July – First Two Weeks", "July – Last Two Weeks",
			"August – Full Month", "August – First Two Weeks", "August – Last Two Weeks",
			"Flexible / Open to discussion",
		},
		Referral: []string{
			"University careers service", "Friend or colleague", "Social media",
			"Email newsletter", "University notice board", "Other",
		},
	}
	return c
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
