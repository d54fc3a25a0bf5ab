package handlers

import (
	"github.com/jmoiron/sqlx"

	"fieldstock/internal/repos"
	"fieldstock/internal/services"
)

type Deps struct {
	UserRepo *repos.UserRepo

	MaterialHandler     *MaterialHandler
	RequestHandler      *RequestHandler
	UsedMaterialHandler *UsedMaterialHandler
	TaskHandler         *TaskHandler
	VendorHandler       *VendorHandler
	ReportHandler       *ReportHandler
	AdminHandler        *AdminHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	userRepo := repos.NewUserRepo(db)
	matRepo := repos.NewMaterialRepo(db)
	reqRepo := repos.NewRequestRepo(db)
	usedRepo := repos.NewUsedMaterialRepo(db)
	taskRepo := repos.NewTaskRepo(db)
	vendorRepo := repos.NewVendorRepo(db)
	reportRepo := repos.NewReportRepo(db)

	stockSvc := services.NewStockService(matRepo)
	reqSvc := services.NewRequestService(reqRepo, matRepo)
	usedSvc := services.NewUsedMaterialService(usedRepo, matRepo)
	taskSvc := services.NewTaskService(taskRepo, userRepo)
	reportSvc := services.NewReportService(reportRepo)

	return &Deps{
		UserRepo:            userRepo,
		MaterialHandler:     &MaterialHandler{Stock: stockSvc},
		RequestHandler:      &RequestHandler{Requests: reqSvc},
		UsedMaterialHandler: &UsedMaterialHandler{Used: usedSvc},
		TaskHandler:         &TaskHandler{Tasks: taskSvc},
		VendorHandler:       &VendorHandler{Vendors: vendorRepo},
		ReportHandler:       &ReportHandler{Reports: reportSvc},
		AdminHandler:        &AdminHandler{Users: userRepo, Tasks: taskRepo, Reports: reportRepo},
	}
}
