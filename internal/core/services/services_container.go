package services

import (
	"time"

	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// queue and totalsCache may be nil; notifications are then dropped and reports hit the database.
// reportLocation defaults to time.Local when nil.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	queue portssvc.NotificationQueue,
	totalsCache portsrepo.TotalsCache,
	reportLocation *time.Location,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Product = NewProductService(repos.ProductRepo)
	container.Movement = NewMovementService(repos.MovementRepo)

	// The balance engine is shared by sales and payments; it owns every balance write.
	container.Account = NewAccountService(
		repos.TxManager,
		repos.AccountRepo,
		container.Movement,
		WithUserDirectory(container.User),
	)

	container.Notification = NewNotificationService(queue, repos.AccountRepo, repos.UserRepo, repos.NotificationRepo)

	container.Sale = NewSaleService(
		repos.TxManager,
		repos.SaleRepo,
		repos.ProductRepo,
		container.Account,
		WithSaleNotifier(container.Notification),
	)
	container.Payment = NewPaymentService(
		repos.TxManager,
		repos.PaymentRepo,
		container.Account,
		WithPaymentNotifier(container.Notification),
	)

	reportingOpts := []ReportingServiceOption{}
	if reportLocation != nil {
		reportingOpts = append(reportingOpts, WithReportingLocation(reportLocation))
	}
	if totalsCache != nil {
		reportingOpts = append(reportingOpts, WithTotalsCache(totalsCache))
	}
	container.Reporting = NewReportingService(repos.MovementRepo, repos.AccountRepo, reportingOpts...)

	return container
}
