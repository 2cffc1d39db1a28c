package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"zenvor/internal/config"
	"zenvor/internal/database"
	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/lead"
	"zenvor/internal/pkg/logger"
)

var (
	firstNames = []string{"Aigerim", "Daniyar", "Maria", "James", "Olga", "Priya", "Tomas", "Lena", "Ahmed", "Sofia"}
	lastNames  = []string{"Sarsenova", "Kim", "Lopez", "Walker", "Ivanova", "Patel", "Novak", "Schmidt", "Haddad", "Rossi"}
	companies  = []string{"Northwind Logistics", "Bright Dental", "Steppe Realty", "Atlas Legal", "Nova Fitness", "Orbit Retail", "Pine Clinic", "Delta Freight"}
	toolPool   = []string{"WhatsApp", "Telegram", "HubSpot", "amoCRM", "Google Calendar", "Calendly", "n8n", "Zapier", "Notion", "Airtable"}
	jobTitles  = []string{"CEO", "COO", "Head of Sales", "Operations Manager", "Founder"}
	referrals  = []string{"Google", "LinkedIn", "Friend", "Conference", "Instagram"}
	owners     = []string{"alex", "dana", "marat"}
)

func main() {
	leads := flag.Int("leads", 24, "number of leads to create")
	demos := flag.Int("demos", 12, "number of demo requests to create")
	clean := flag.Bool("clean", true, "delete existing intake records first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if config.IsProdLike(cfg.AppEnv) {
		zl.Fatal("refusing to seed a production database", zap.String("env", cfg.AppEnv))
	}

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("DB connection failed", zap.Error(err))
	}

	zl.Info("running AutoMigrate")
	if err := database.Migrate(db, &lead.Lead{}, &demo.Request{}); err != nil {
		zl.Fatal("AutoMigrate failed", zap.Error(err))
	}

	if *clean {
		zl.Info("cleaning old data")
		db.Exec("DELETE FROM get_started_leads")
		db.Exec("DELETE FROM demo_requests")
	}

	now := time.Now().UTC()
	if err := seedLeads(db, *leads, now); err != nil {
		zl.Fatal("seeding leads failed", zap.Error(err))
	}
	zl.Info("leads created", zap.Int("count", *leads))

	if err := seedDemos(db, *demos, now); err != nil {
		zl.Fatal("seeding demo requests failed", zap.Error(err))
	}
	zl.Info("demo requests created", zap.Int("count", *demos))

	zl.Info("seed completed")
}

func pick[T any](xs []T) T {
	return xs[rand.IntN(len(xs))]
}

func maybe(p float64, v string) *string {
	if rand.Float64() >= p {
		return nil
	}
	return &v
}

func person(i int) (name, email string) {
	first, last := pick(firstNames), pick(lastNames)
	name = first + " " + last
	email = fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i)
	return name, email
}

// seedLeads spreads leads over the last few weeks, oldest first. The
// newest ones stay "new" so the triage inbox has something to work on.
func seedLeads(db *gorm.DB, n int, now time.Time) error {
	for i := 0; i < n; i++ {
		name, email := person(i)
		created := now.Add(-time.Duration(n-i) * 17 * time.Hour)

		var tools []string
		for _, t := range toolPool {
			if rand.IntN(3) == 0 {
				tools = append(tools, t)
			}
		}
		var joined *string
		if len(tools) > 0 {
			s := strings.Join(tools, ",")
			joined = &s
		}

		status := lead.StatusNew
		if i < n-5 {
			status = pick(lead.Pipeline)
		}
		var assigned *string
		if status != lead.StatusNew {
			assigned = maybe(0.8, pick(owners))
		}

		pain := pick(lead.PainPoints)
		l := &lead.Lead{
			FullName:     name,
			Email:        email,
			CompanyName:  pick(companies),
			CompanySize:  pick(lead.CompanySizes),
			CurrentTools: joined,
			PainPoint:    maybe(0.9, string(pain)),
			Budget:       maybe(0.7, string(pick(lead.Budgets))),
			Status:       status,
			AssignedTo:   assigned,
			CreatedAt:    created,
			UpdatedAt:    created,
		}
		if pain == lead.PainOther {
			l.PainPointOther = maybe(1, "We lose track of supplier emails")
		}
		if err := db.Create(l).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedDemos(db *gorm.DB, n int, now time.Time) error {
	for i := 0; i < n; i++ {
		name, email := person(100 + i)
		created := now.Add(-time.Duration(n-i) * 29 * time.Hour)

		status := demo.StatusPending
		if i < n-3 {
			status = pick(demo.Pipeline)
		}

		dr := &demo.Request{
			FullName:        name,
			Email:           email,
			Phone:           maybe(0.6, fmt.Sprintf("+7 701 555 %04d", rand.IntN(10000))),
			CompanyName:     maybe(0.8, pick(companies)),
			JobTitle:        maybe(0.6, pick(jobTitles)),
			ServiceInterest: maybe(0.9, string(pick(demo.ServiceInterests))),
			Message:         maybe(0.5, "Would like to see how the assistant handles inbound WhatsApp leads."),
			ReferralSource:  maybe(0.5, pick(referrals)),
			Status:          status,
			CreatedAt:       created,
			UpdatedAt:       created,
		}
		if err := db.Create(dr).Error; err != nil {
			return err
		}
	}
	return nil
}
