package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

var tracer = otel.Tracer("smc.bookingwizard.bookingapi")

// Client клиент REST API бэкенда бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
	observer   CallObserver
}

// NewClient создает новый экземпляр клиента. limiter и observer могут быть nil.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, log Logger, observer CallObserver) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:  limiter,
		log:      log,
		observer: observer,
	}
}

// GetSettings получает настройки бронирования
func (c *Client) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var dto SettingsDTO
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &dto); err != nil {
		return nil, err
	}
	return toDomainSettings(dto), nil
}

// GetAvailableServices получает карту услуга -> сотрудник -> локации
func (c *Client) GetAvailableServices(ctx context.Context) (domain.AvailableServices, error) {
	var dto map[string]map[string][]int64
	if err := c.do(ctx, http.MethodGet, "/services/available", nil, nil, &dto); err != nil {
		return nil, err
	}
	available, err := toDomainAvailableServices(dto)
	if err != nil {
		return nil, invalidResponse("/services/available", err)
	}
	return available, nil
}

// GetServices получает услуги по ID
func (c *Client) GetServices(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	return fetchEntities(ctx, c, domain.EntityService, ids, toDomainService)
}

// GetEmployees получает сотрудников по ID
func (c *Client) GetEmployees(ctx context.Context, ids []int64) ([]*domain.Employee, error) {
	return fetchEntities(ctx, c, domain.EntityEmployee, ids, toDomainEmployee)
}

// GetLocations получает локации по ID
func (c *Client) GetLocations(ctx context.Context, ids []int64) ([]*domain.Location, error) {
	return fetchEntities(ctx, c, domain.EntityLocation, ids, toDomainLocation)
}

// GetSchedules получает расписания по ID
func (c *Client) GetSchedules(ctx context.Context, ids []int64) ([]*domain.Schedule, error) {
	return fetchEntities(ctx, c, domain.EntitySchedule, ids, toDomainSchedule)
}

// FindCoupon ищет купон по коду
func (c *Client) FindCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	query := url.Values{"code": {code}}

	var dtos []CouponDTO
	if err := c.do(ctx, http.MethodGet, "/"+domain.EntityCoupon+"s", query, nil, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, &Error{Endpoint: "/coupons", Status: http.StatusNotFound, Err: ErrNotFound}
	}
	coupon, err := toDomainCoupon(dtos[0])
	if err != nil {
		return nil, invalidResponse("/coupons", err)
	}
	return coupon, nil
}

// GetTimeSlots получает свободные слоты услуги на период
func (c *Client) GetTimeSlots(ctx context.Context, req TimeSlotsRequest) (domain.TimeSlots, error) {
	query := url.Values{
		"service_id": {strconv.FormatInt(req.ServiceID, 10)},
		"from":       {types.FormatDate(req.From)},
		"to":         {types.FormatDate(req.To)},
	}
	if len(req.EmployeeIDs) > 0 {
		query.Set("employees", joinIDs(req.EmployeeIDs))
	}
	if len(req.LocationIDs) > 0 {
		query.Set("locations", joinIDs(req.LocationIDs))
	}
	if req.Capacity > 0 {
		query.Set("capacity", strconv.Itoa(req.Capacity))
	}
	if len(req.Exclude) > 0 {
		exclude, err := json.Marshal(req.Exclude)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode exclude list: %v", ErrInternal, err)
		}
		query.Set("exclude", string(exclude))
	}

	var dto TimeSlotsDTO
	if err := c.do(ctx, http.MethodGet, "/calendar/time", query, nil, &dto); err != nil {
		return nil, err
	}
	return toDomainTimeSlots(dto), nil
}

// GetReservations получает резервации по фильтру
func (c *Client) GetReservations(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	query := url.Values{}
	if filter.EmployeeID != 0 {
		query.Set("employee_id", strconv.FormatInt(filter.EmployeeID, 10))
	}
	if filter.LocationID != 0 {
		query.Set("location_id", strconv.FormatInt(filter.LocationID, 10))
	}
	if !filter.From.IsZero() {
		query.Set("from", types.FormatDate(filter.From))
	}
	if !filter.To.IsZero() {
		query.Set("to", types.FormatDate(filter.To))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query.Set("status", strings.Join(statuses, ","))
	}

	var dtos []ReservationDTO
	if err := c.do(ctx, http.MethodGet, "/bookings/reservations", query, nil, &dtos); err != nil {
		return nil, err
	}

	reservations := make([]*domain.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		r, err := toDomainReservation(dto)
		if err != nil {
			return nil, invalidResponse("/bookings/reservations", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}

// CreateBooking оформляет бронирование
func (c *Client) CreateBooking(ctx context.Context, payload cart.Payload) (*BookingResult, error) {
	var result BookingResult
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateDraftBooking создает черновик бронирования перед оплатой
func (c *Client) CreateDraftBooking(ctx context.Context, payload cart.Payload) (*DraftBooking, error) {
	var draft DraftBooking
	if err := c.do(ctx, http.MethodPost, "/bookings/draft", nil, payload, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// PreparePayment просит сервер создать платеж у провайдера
func (c *Client) PreparePayment(ctx context.Context, req PreparePaymentRequest) (*PreparedPayment, error) {
	var prepared PreparedPayment
	if err := c.do(ctx, http.MethodPost, "/payments/prepare", nil, req, &prepared); err != nil {
		return nil, err
	}
	return &prepared, nil
}

// CreateCustomer создает аккаунт клиента
func (c *Client) CreateCustomer(ctx context.Context, req CustomerRequest) (*Customer, error) {
	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/customers/create", nil, req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetPaymentSettings получает публичные настройки платежного шлюза
func (c *Client) GetPaymentSettings(ctx context.Context, gatewayID string) (map[string]string, error) {
	query := url.Values{"gateway_id": {gatewayID}}

	settings := make(map[string]string)
	if err := c.do(ctx, http.MethodGet, "/payments/settings", query, nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func fetchEntities[D any, T any](ctx context.Context, c *Client, entity string, ids []int64, convert func(D) (*T, error)) ([]*T, error) {
	if len(ids) == 0 {
		return []*T{}, nil
	}

	query := url.Values{"id": {joinIDs(ids)}}

	var dtos []D
	if err := c.do(ctx, http.MethodGet, "/"+entity+"s", query, nil, &dtos); err != nil {
		return nil, err
	}

	entities := make([]*T, 0, len(dtos))
	for _, dto := range dtos {
		e, err := convert(dto)
		if err != nil {
			return nil, invalidResponse("/"+entity+"s", err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	ctx, span := tracer.Start(ctx, "bookingapi."+strings.ToLower(method),
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("bookingapi.endpoint", endpoint),
	)

	fail := func(err *Error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn("Booking API %s %s failed: %v", method, endpoint, err)
		return err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(&Error{Endpoint: endpoint, Err: ErrRequestFailed, Cause: err})
		}
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(&Error{Endpoint: endpoint, Err: ErrInternal, Cause: err})
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fail(&Error{Endpoint: endpoint, Err: ErrInternal, Cause: err})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, time.Since(start))
		return fail(&Error{Endpoint: endpoint, Err: ErrRequestFailed, Cause: err})
	}
	defer resp.Body.Close()

	c.observe(endpoint, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return &Error{Endpoint: endpoint, Status: resp.StatusCode, Message: readMessage(resp.Body), Err: ErrNotFound}
	default:
		apiErr := &Error{Endpoint: endpoint, Status: resp.StatusCode, Message: readMessage(resp.Body), Err: ErrRequestFailed}
		if apiErr.Message != "" {
			apiErr.Err = ErrAPI
		}
		return fail(apiErr)
	}

	if out == nil {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(&Error{Endpoint: endpoint, Status: resp.StatusCode, Err: ErrInvalidResponse, Cause: err})
	}

	return nil
}

func (c *Client) observe(endpoint string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRESTCall(endpoint, status, d)
	}
}

// readMessage достает {message} из тела ошибки, пустая строка если его нет
func readMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil {
		return ""
	}
	return errResp.Message
}

func invalidResponse(endpoint string, err error) error {
	return &Error{Endpoint: endpoint, Err: ErrInvalidResponse, Cause: err}
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
