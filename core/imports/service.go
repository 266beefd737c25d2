package imports

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core"
	"github.com/edukeep/edukeep/core/alert"
	"github.com/edukeep/edukeep/core/risk"
	"github.com/edukeep/edukeep/core/schema"
)

// Service runs one file import end to end:
// parse -> validate -> reconcile -> classify -> emit alerts.
// The whole pipeline is synchronous; control only returns once the batch is
// fully committed or fully rejected.
type Service struct {
	repo       Repository
	alertRepo  alert.Repository
	thresholds risk.ThresholdRepository
	mailSvc    core.EmailService
	logger     core.Logger
}

func NewService(
	repo Repository,
	alertRepo alert.Repository,
	thresholds risk.ThresholdRepository,
	mailSvc core.EmailService,
	logger core.Logger,
) *Service {
	return &Service{
		repo:       repo,
		alertRepo:  alertRepo,
		thresholds: thresholds,
		mailSvc:    mailSvc,
		logger:     logger,
	}
}

// Import processes one uploaded file for a (product, institution) pair.
//
// Batch commit is all-or-nothing: any row-level validation error rejects
// the entire upload, the store stays untouched and no alerts are emitted.
// Format problems (bad extension, unreadable payload) are returned as an
// error instead; row-level problems come back inside Result.Errors.
func (svc *Service) Import(
	ctx context.Context,
	filename string,
	data []byte,
	product schema.ProductType,
	institution schema.InstitutionType,
) (Result, error) {
	profile, err := schema.Get(product, institution)
	if err != nil {
		return Result{}, err
	}
	format, err := ParseFormat(filename)
	if err != nil {
		return Result{}, err
	}
	rows, err := Parse(data, format)
	if err != nil {
		return Result{}, err
	}

	records, rowErrs := Validate(rows, profile)
	if len(rowErrs) > 0 {
		return Result{Errors: rowErrs}, nil
	}

	period := PeriodOf(NowFunc())
	for i := range records {
		records[i].Period = period
	}

	plan, err := Reconcile(ctx, records, svc.repo)
	if err != nil {
		return Result{}, errors.Wrap(err, "reconciling records")
	}

	if product == schema.ProductRetention {
		thresholds := svc.loadThresholds(ctx)
		for i := range plan.Inserted {
			plan.Inserted[i].RiskLevel = risk.Classify(plan.Inserted[i].Signals(), thresholds)
		}
		for i := range plan.Updated {
			plan.Updated[i].RiskLevel = risk.Classify(plan.Updated[i].Signals(), thresholds)
		}
	}

	// commit
	all := make([]Record, 0, len(plan.Inserted)+len(plan.Updated))
	for _, rec := range plan.Inserted {
		created, err := svc.repo.CreateRecord(ctx, rec)
		if err != nil {
			return Result{}, errors.Wrapf(err, "inserting record %q", rec.KeyValue)
		}
		all = append(all, created)
	}
	for _, rec := range plan.Updated {
		updated, err := svc.repo.UpdateRecord(ctx, rec)
		if err != nil {
			return Result{}, errors.Wrapf(err, "updating record %q", rec.KeyValue)
		}
		all = append(all, updated)
	}

	alerts, err := svc.emitAlerts(ctx, all)
	if err != nil {
		return Result{}, err
	}
	svc.sendDigest(alerts)

	return Result{
		Records:      all,
		NewCount:     len(plan.Inserted),
		UpdatedCount: len(plan.Updated),
		AlertCount:   len(alerts),
	}, nil
}

func (svc *Service) loadThresholds(ctx context.Context) risk.Thresholds {
	if svc.thresholds == nil {
		return risk.DefaultThresholds()
	}
	t, err := svc.thresholds.GetThresholds(ctx)
	if err != nil {
		if svc.logger != nil {
			svc.logger.Warn("loading risk thresholds failed, using defaults", err)
		}
		return risk.DefaultThresholds()
	}
	return t
}

func (svc *Service) emitAlerts(ctx context.Context, records []Record) ([]alert.Alert, error) {
	if svc.alertRepo == nil {
		return nil, nil
	}
	emitter := alert.NewEmitter(svc.alertRepo)
	var alerts []alert.Alert
	for _, rec := range records {
		a, err := emitter.Emit(ctx, rec.ID, rec.DisplayName(), rec.Period, rec.RiskLevel)
		if err != nil {
			return nil, errors.Wrapf(err, "emitting alert for record %q", rec.KeyValue)
		}
		if a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts, nil
}

// sendDigest emails the coordination inbox a summary of new alerts.
// Best effort: a missing recipient or mail service never fails the import.
func (svc *Service) sendDigest(alerts []alert.Alert) {
	if svc.mailSvc == nil || len(alerts) == 0 {
		return
	}
	recipient := core.Conf.GetString("alertRecipientEmail")
	if recipient == "" {
		return
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%d record(s) flagged during the latest import:\n\n", len(alerts))
	for _, a := range alerts {
		fmt.Fprintf(&body, "- %s (%s risk, period %s)\n", a.RecordName, a.RiskLevel, a.Period)
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: recipient}},
		Subject: fmt.Sprintf("%d new retention risk alert(s)", len(alerts)),
		Body:    body.String(),
	})
}
