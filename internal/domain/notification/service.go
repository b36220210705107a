// internal/domain/notification/service.go
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// Service dispatches transactional order notifications over email and
// SMS. It trusts the caller to invoke the right operation; it does not
// watch for order changes itself.
type Service struct {
	repo   Repository
	email  EmailSender
	sms    SMSSender
	logger *logrus.Logger
}

// NewService creates a new notification service
func NewService(repo Repository, email EmailSender, sms SMSSender, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		email:  email,
		sms:    sms,
		logger: logger,
	}
}

// DispatchConfirmation sends the order confirmation over both channels
func (s *Service) DispatchConfirmation(ctx context.Context, orderID string) (*DispatchResult, error) {
	o, cust, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := s.send(ctx, cust, buildConfirmationEmail(o, cust), buildConfirmationSMS(o, cust))
	s.logDispatch("confirmation", o, result)
	return &result, nil
}

// DispatchStatusChange notifies the customer that the kitchen moved
// their order to a new status. Returns skipped=true for statuses that
// have no customer-facing meaning; no data is fetched in that case.
func (s *Service) DispatchStatusChange(ctx context.Context, orderID string, newStatus order.OrderStatus) (*DispatchResult, bool, error) {
	// pending is the initial state, not a transition worth announcing
	if newStatus == order.OrderStatusPending {
		return nil, true, nil
	}

	o, cust, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	result := s.send(ctx, cust, buildStatusEmail(o, cust, newStatus), buildStatusSMS(o, cust, newStatus))
	s.logDispatch("status_change", o, result)
	return &result, false, nil
}

// DispatchReminders sends day-of reminders. With an orderID it targets
// one order; without, it covers every order due today that is still in
// progress or ready. Each order is isolated: one bad record never
// stops the rest of the batch.
func (s *Service) DispatchReminders(ctx context.Context, orderID string) ([]ReminderOutcome, error) {
	var orders []order.Order

	if orderID != "" {
		o, err := s.repo.OrderWithContacts(ctx, orderID)
		if err != nil {
			return nil, err
		}
		orders = []order.Order{*o}
	} else {
		due, err := s.repo.DueOrders(ctx, time.Now())
		if err != nil {
			return nil, err
		}
		orders = due
	}

	outcomes := make([]ReminderOutcome, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		outcome := ReminderOutcome{OrderID: o.ID, OrderNumber: o.OrderNumber}

		if o.Customer == nil {
			outcome.Error = ErrCustomerNotFound.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		result := s.send(ctx, o.Customer, buildReminderEmail(o, o.Customer), buildReminderSMS(o, o.Customer))
		outcome.Email = result.Email
		outcome.SMS = result.SMS
		outcomes = append(outcomes, outcome)
		s.logDispatch("reminder", o, result)
	}

	return outcomes, nil
}

func (s *Service) loadOrder(ctx context.Context, orderID string) (*order.Order, *customer.Customer, error) {
	if orderID == "" {
		return nil, nil, fmt.Errorf("order id is required")
	}
	o, err := s.repo.OrderWithContacts(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if o.Customer == nil {
		return nil, nil, ErrCustomerNotFound
	}
	return o, o.Customer, nil
}

// send runs both channels through their gates. Email goes out when a
// payload was built and the customer has not opted out; SMS needs a
// payload, a phone number and no opt-out. Customers who never answered
// the opt-in question count as opted in.
func (s *Service) send(ctx context.Context, cust *customer.Customer, email *emailContent, smsBody string) DispatchResult {
	result := DispatchResult{Email: OutcomeSkipped, SMS: OutcomeSkipped}

	if email != nil && cust.EmailOptedIn() {
		if err := s.email.SendEmail(ctx, cust.Email, email.Subject, email.HTML); err != nil {
			s.logger.WithError(err).WithField("to", cust.Email).Warn("email send failed")
			result.Email = OutcomeFailed
		} else {
			result.Email = OutcomeSent
		}
	}

	if smsBody != "" && cust.Phone != "" && cust.SmsOptedIn() {
		if err := s.sms.SendSMS(ctx, cust.Phone, smsBody); err != nil {
			s.logger.WithError(err).WithField("to", cust.Phone).Warn("sms send failed")
			result.SMS = OutcomeFailed
		} else {
			result.SMS = OutcomeSent
		}
	}

	return result
}

func (s *Service) logDispatch(kind string, o *order.Order, result DispatchResult) {
	s.logger.WithFields(logrus.Fields{
		"kind":         kind,
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"email":        result.Email,
		"sms":          result.SMS,
	}).Info("notification dispatched")
}
