package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jornada-hq/jornada-backend-go/internal/config"
	appHTTP "github.com/jornada-hq/jornada-backend-go/internal/handler/http"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/database"
	"github.com/jornada-hq/jornada-backend-go/internal/pkg/jwt"
	"github.com/jornada-hq/jornada-backend-go/internal/repository/postgresql"
	complianceService "github.com/jornada-hq/jornada-backend-go/internal/service/compliance"
	timesheetService "github.com/jornada-hq/jornada-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	engine, err := complianceService.NewEngine(cfg.Limits())
	if err != nil {
		log.Fatal("Failed to initialize compliance engine: ", err)
	}

	complianceSvc := complianceService.NewComplianceService(engine, timeEntryRepo, breakRepo, employeeRepo)
	timesheetSvc := timesheetService.NewTimesheetService(db, engine, timeEntryRepo, breakRepo, employeeRepo)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc)
	complianceHandler := appHTTP.NewComplianceHandler(complianceSvc)

	router := appHTTP.NewRouter(
		JWTService,
		timesheetHandler,
		complianceHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
