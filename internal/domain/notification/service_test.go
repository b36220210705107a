package notification

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

type mockRepository struct {
	orders     map[string]*order.Order
	due        []order.Order
	dueErr     error
	fetchCalls int
}

func (m *mockRepository) OrderWithContacts(ctx context.Context, orderID string) (*order.Order, error) {
	m.fetchCalls++
	o, ok := m.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (m *mockRepository) DueOrders(ctx context.Context, date time.Time) ([]order.Order, error) {
	if m.dueErr != nil {
		return nil, m.dueErr
	}
	return m.due, nil
}

type mockEmailSender struct {
	sent []string // recipient addresses
	err  error
}

func (m *mockEmailSender) SendEmail(ctx context.Context, to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type mockSMSSender struct {
	sent []string // recipient phone numbers
	err  error
}

func (m *mockSMSSender) SendSMS(ctx context.Context, to, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func boolPtr(v bool) *bool { return &v }

func testCustomer() *customer.Customer {
	return &customer.Customer{
		ID:       "cust-1",
		Email:    "ada@example.com",
		FullName: "Ada Okafor",
		Phone:    "+14045551234",
	}
}

func testOrder(id string, cust *customer.Customer) *order.Order {
	size := "16oz"
	return &order.Order{
		ID:          id,
		OrderNumber: "SR-TEST1",
		CustomerID:  "cust-1",
		OrderType:   order.OrderTypeDelivery,
		OrderDay:    menu.OrderDayMonday,
		OrderDate:   time.Now(),
		Status:      order.OrderStatusInProgress,
		Subtotal:    4200,
		Tax:         336,
		Total:       4536,
		DeliveryAddress: order.DeliveryAddress{
			StreetAddress: "123 Peachtree St",
			City:          "Atlanta",
			State:         "GA",
			ZipCode:       "30303",
		},
		Items: []order.OrderItem{
			{ItemName: "Jollof Rice", Size: &size, Quantity: 2, UnitPrice: 2100, TotalPrice: 4200},
		},
		Customer: cust,
	}
}

func newTestService(repo Repository, email EmailSender, sms SMSSender) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(repo, email, sms, logger)
}

func TestDispatchConfirmationSendsBothChannels(t *testing.T) {
	// Opt-ins never answered: both default to opted in
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", testCustomer())}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	result, err := svc.DispatchConfirmation(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, result.Email)
	assert.Equal(t, OutcomeSent, result.SMS)
	assert.Equal(t, []string{"ada@example.com"}, email.sent)
	assert.Equal(t, []string{"+14045551234"}, sms.sent)
}

func TestDispatchConfirmationRespectsEmailOptOut(t *testing.T) {
	cust := testCustomer()
	cust.EmailOptIn = boolPtr(false)
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", cust)}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	result, err := svc.DispatchConfirmation(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, result.Email)
	assert.Equal(t, OutcomeSent, result.SMS)
	assert.Empty(t, email.sent)
}

func TestDispatchConfirmationSkipsSMSWithoutPhone(t *testing.T) {
	cust := testCustomer()
	cust.Phone = ""
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", cust)}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	result, err := svc.DispatchConfirmation(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, result.Email)
	assert.Equal(t, OutcomeSkipped, result.SMS)
	assert.Empty(t, sms.sent)
}

func TestDispatchConfirmationRespectsSMSOptOut(t *testing.T) {
	cust := testCustomer()
	cust.SmsOptIn = boolPtr(false)
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", cust)}}
	svc := newTestService(repo, &mockEmailSender{}, &mockSMSSender{})

	result, err := svc.DispatchConfirmation(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, result.SMS)
}

func TestChannelFailureDoesNotEscalate(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", testCustomer())}}
	email := &mockEmailSender{err: errors.New("provider 500")}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	result, err := svc.DispatchConfirmation(context.Background(), "o-1")

	// A failed channel is recorded, never returned as an error
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, result.Email)
	assert.Equal(t, OutcomeSent, result.SMS)
}

func TestDispatchConfirmationOrderNotFound(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{}}
	svc := newTestService(repo, &mockEmailSender{}, &mockSMSSender{})

	_, err := svc.DispatchConfirmation(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDispatchConfirmationCustomerMissing(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", nil)}}
	svc := newTestService(repo, &mockEmailSender{}, &mockSMSSender{})

	_, err := svc.DispatchConfirmation(context.Background(), "o-1")

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestDispatchStatusChangePendingSkipsBeforeFetch(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", testCustomer())}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	result, skipped, err := svc.DispatchStatusChange(context.Background(), "o-1", order.OrderStatusPending)

	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Nil(t, result)
	assert.Equal(t, 0, repo.fetchCalls, "pending must short-circuit before any data access")
	assert.Empty(t, email.sent)
	assert.Empty(t, sms.sent)
}

func TestDispatchStatusChangeSendsForKnownStatus(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", testCustomer())}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	result, skipped, err := svc.DispatchStatusChange(context.Background(), "o-1", order.OrderStatusReady)

	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, OutcomeSent, result.Email)
	assert.Equal(t, OutcomeSent, result.SMS)
}

func TestDispatchStatusChangeMissingTemplateSkipsChannels(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", testCustomer())}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	// A status with no template: nothing goes out, but it's not an error
	result, skipped, err := svc.DispatchStatusChange(context.Background(), "o-1", order.OrderStatus("archived"))

	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, OutcomeSkipped, result.Email)
	assert.Equal(t, OutcomeSkipped, result.SMS)
	assert.Empty(t, email.sent)
	assert.Empty(t, sms.sent)
}

func TestDispatchRemindersSingleOrder(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{"o-1": testOrder("o-1", testCustomer())}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	outcomes, err := svc.DispatchReminders(context.Background(), "o-1")

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, OutcomeSent, outcomes[0].Email)
	assert.Equal(t, OutcomeSent, outcomes[0].SMS)
	assert.Empty(t, outcomes[0].Error)
}

func TestDispatchRemindersBatchIsolation(t *testing.T) {
	good1 := testOrder("o-1", testCustomer())
	orphan := testOrder("o-2", nil) // customer record gone
	good2 := testOrder("o-3", testCustomer())

	repo := &mockRepository{due: []order.Order{*good1, *orphan, *good2}}
	email := &mockEmailSender{}
	sms := &mockSMSSender{}
	svc := newTestService(repo, email, sms)

	outcomes, err := svc.DispatchReminders(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	// The orphan records its error without stopping the batch
	assert.Empty(t, outcomes[0].Error)
	assert.Equal(t, ErrCustomerNotFound.Error(), outcomes[1].Error)
	assert.Empty(t, outcomes[2].Error)
	assert.Equal(t, OutcomeSent, outcomes[2].Email)
	assert.Len(t, email.sent, 2)
}

func TestDispatchRemindersQueryFailure(t *testing.T) {
	repo := &mockRepository{dueErr: errors.New("db down")}
	svc := newTestService(repo, &mockEmailSender{}, &mockSMSSender{})

	_, err := svc.DispatchReminders(context.Background(), "")

	assert.Error(t, err)
}

func TestDispatchRemindersTargetedOrderNotFound(t *testing.T) {
	repo := &mockRepository{orders: map[string]*order.Order{}}
	svc := newTestService(repo, &mockEmailSender{}, &mockSMSSender{})

	_, err := svc.DispatchReminders(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestReminderSMSIncludesPickupWindow(t *testing.T) {
	cust := testCustomer()
	o := testOrder("o-1", cust)
	o.OrderType = order.OrderTypePickup
	o.PickupLocation = &order.PickupLocation{
		Name:       "Midtown",
		Address:    "10 10th St NE",
		City:       "Atlanta",
		PickupTime: "5:00 PM - 7:00 PM",
	}

	body := buildReminderSMS(o, cust)

	assert.Contains(t, body, "Midtown")
	assert.Contains(t, body, "5:00 PM - 7:00 PM")
}

func TestConfirmationEmailContent(t *testing.T) {
	cust := testCustomer()
	o := testOrder("o-1", cust)
	o.IsGift = true
	o.RecipientName = "Chidi"

	content := buildConfirmationEmail(o, cust)

	require.NotNil(t, content)
	assert.Contains(t, content.Subject, o.OrderNumber)
	assert.Contains(t, content.HTML, "Jollof Rice (16oz)")
	assert.Contains(t, content.HTML, "$45.36")
	assert.Contains(t, content.HTML, "123 Peachtree St, Atlanta, GA 30303")
	assert.Contains(t, content.HTML, "Chidi")
}
