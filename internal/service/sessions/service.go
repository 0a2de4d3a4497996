package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingWizard/internal/app"
	"github.com/m04kA/SMC-BookingWizard/internal/cart"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingWizard/internal/steps"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

// Config параметры сервиса сессий
type Config struct {
	Form        steps.FormOptions
	SettingsTTL time.Duration
}

// session один мастер; все изменения идут под mu
type session struct {
	mu      sync.Mutex
	wizard  *app.Wizard
	touched time.Time
}

// Service держит мастера посетителей в памяти и сохраняет их состояние в БД
type Service struct {
	deps     app.Deps
	cfg      Config
	repo     SessionRepository
	settings SettingsSource
	metrics  Metrics
	clock    TimeProvider
	logger   Logger

	mu       sync.RWMutex
	sessions map[string]*session

	settingsMu     sync.Mutex
	cachedSettings *domain.Settings
	settingsAt     time.Time
}

// NewService создает новый экземпляр сервиса сессий. metrics может быть nil.
func NewService(
	deps app.Deps,
	cfg Config,
	repo SessionRepository,
	settings SettingsSource,
	metrics Metrics,
	clock TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		deps:     deps,
		cfg:      cfg,
		repo:     repo,
		settings: settings,
		metrics:  metrics,
		clock:    clock,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Create открывает новую сессию и показывает первый шаг
func (s *Service) Create(ctx context.Context) (string, app.State, error) {
	opts, err := s.options(ctx)
	if err != nil {
		return "", app.State{}, err
	}

	w := app.New(s.deps, opts)
	if err := w.Start(ctx); err != nil {
		s.logger.Error("Create: failed to start wizard: %v", err)
		return "", app.State{}, fmt.Errorf("%w: Create - start wizard: %v", ErrInternal, err)
	}

	id := uuid.NewString()
	sess := &session{wizard: w, touched: s.clock.Now()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	s.opened()

	s.persist(ctx, id, sess)
	s.logger.Info("Create: session %s opened", id)

	return id, w.State(), nil
}

// Get возвращает состояние сессии
func (s *Service) Get(ctx context.Context, id string) (app.State, error) {
	return s.with(ctx, id, false, func(*app.Wizard) error { return nil })
}

// SetProperties меняет свойства текущего шага
func (s *Service) SetProperties(ctx context.Context, id, stepID string, values map[string]interface{}) (app.State, error) {
	if len(values) == 0 {
		return app.State{}, fmt.Errorf("%w: no properties", ErrInvalidInput)
	}
	return s.with(ctx, id, true, func(w *app.Wizard) error {
		return w.SetProperties(ctx, stepID, values)
	})
}

// Submit отправляет текущий шаг; отказ шага виден в его сообщении
func (s *Service) Submit(ctx context.Context, id, stepID string) (bool, app.State, error) {
	submitted := false
	state, err := s.with(ctx, id, true, func(w *app.Wizard) error {
		ok, err := w.Submit(ctx, stepID)
		submitted = ok
		return err
	})
	return submitted, state, err
}

// Dispatch обрабатывает событие мастера от клиента
func (s *Service) Dispatch(ctx context.Context, id string, event wizard.Event) (app.State, error) {
	return s.with(ctx, id, true, func(w *app.Wizard) error {
		return w.Dispatch(ctx, event)
	})
}

// AddItem начинает ещё одну позицию корзины
func (s *Service) AddItem(ctx context.Context, id string) (app.State, error) {
	return s.with(ctx, id, true, func(w *app.Wizard) error {
		return w.AddItem(ctx)
	})
}

// RemoveItem удаляет позицию корзины
func (s *Service) RemoveItem(ctx context.Context, id, itemID string) (app.State, error) {
	return s.with(ctx, id, true, func(w *app.Wizard) error {
		return w.RemoveItem(ctx, itemID)
	})
}

// ApplyCoupon применяет купон; отказ показывается в сообщении шага оформления
func (s *Service) ApplyCoupon(ctx context.Context, id, code string) (app.State, error) {
	return s.with(ctx, id, true, func(w *app.Wizard) error {
		return w.ApplyCoupon(ctx, code)
	})
}

// RemoveCoupon убирает купон
func (s *Service) RemoveCoupon(ctx context.Context, id string) (app.State, error) {
	return s.with(ctx, id, true, func(w *app.Wizard) error {
		return w.RemoveCoupon()
	})
}

// ShowDates загружает слоты другого диапазона дат
func (s *Service) ShowDates(ctx context.Context, id string, from, to time.Time) (app.State, error) {
	if to.Before(from) {
		return app.State{}, fmt.Errorf("%w: date range ends before it starts", ErrInvalidInput)
	}
	return s.with(ctx, id, false, func(w *app.Wizard) error {
		return w.ShowDates(ctx, from, to)
	})
}

// Delete закрывает сессию и удаляет её сохранённое состояние
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, inMemory := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if inMemory {
		sess.mu.Lock()
		sess.wizard.Close()
		sess.mu.Unlock()
		s.closed()
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		if inMemory {
			return nil
		}
		return ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("Delete: repository error for session %s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: session %s closed", id)
	return nil
}

// Expire выгружает из памяти сессии без активности дольше ttl и удаляет их из хранилища
func (s *Service) Expire(ctx context.Context, ttl time.Duration) (int, error) {
	deadline := s.clock.Now().Add(-ttl)

	s.mu.Lock()
	expired := make([]*session, 0)
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.touched.Before(deadline)
		sess.mu.Unlock()
		if idle {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.mu.Lock()
		sess.wizard.Close()
		sess.mu.Unlock()
		s.closed()
	}

	deleted, err := s.repo.DeleteOlderThan(ctx, deadline)
	if err != nil {
		s.logger.Error("Expire: repository error: %v", err)
		return len(expired), fmt.Errorf("%w: Expire - repository error: %v", ErrInternal, err)
	}

	if len(expired) > 0 || deleted > 0 {
		s.logger.Info("Expire: unloaded %d sessions, deleted %d stored sessions", len(expired), deleted)
	}
	return len(expired), nil
}

// with выполняет fn над мастером сессии под её мьютексом
func (s *Service) with(ctx context.Context, id string, mutates bool, fn func(w *app.Wizard) error) (app.State, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return app.State{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.touched = s.clock.Now()
	if err := classify(fn(sess.wizard)); err != nil {
		s.logger.Warn("session %s: %v", id, err)
		return app.State{}, err
	}

	if mutates {
		s.persist(ctx, id, sess)
	}
	return sess.wizard.State(), nil
}

// lookup находит сессию в памяти или восстанавливает её из хранилища
func (s *Service) lookup(ctx context.Context, id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	record, err := s.repo.Get(ctx, id)
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("lookup: repository error for session %s: %v", id, err)
		return nil, fmt.Errorf("%w: lookup - repository error: %v", ErrInternal, err)
	}

	var payload cart.Payload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		s.logger.Error("lookup: broken payload of session %s: %v", id, err)
		return nil, fmt.Errorf("%w: lookup - decode payload: %v", ErrInternal, err)
	}

	opts, err := s.options(ctx)
	if err != nil {
		return nil, err
	}

	w, err := app.Restore(ctx, s.deps, opts, app.Snapshot{
		Payload:  payload,
		CartHash: record.CartHash,
		StepID:   record.StepID,
	})
	if err != nil {
		s.logger.Error("lookup: failed to restore session %s: %v", id, err)
		return nil, fmt.Errorf("%w: lookup - restore: %v", ErrInternal, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[id]; ok {
		w.Close()
		return existing, nil
	}

	sess = &session{wizard: w, touched: s.clock.Now()}
	s.sessions[id] = sess
	s.opened()
	s.logger.Info("lookup: session %s restored at step %s", id, w.CurrentStepID())

	return sess, nil
}

// persist сохраняет снимок мастера; ошибка хранилища не прерывает работу сессии
func (s *Service) persist(ctx context.Context, id string, sess *session) {
	snapshot := sess.wizard.Snapshot()

	payload, err := json.Marshal(snapshot.Payload)
	if err != nil {
		s.logger.Error("persist: failed to encode session %s: %v", id, err)
		return
	}

	record := &sessionRepo.Record{
		ID:        id,
		Payload:   payload,
		CartHash:  snapshot.CartHash,
		StepID:    snapshot.StepID,
		UpdatedAt: sess.touched,
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error("persist: failed to save session %s: %v", id, err)
	}
}

// options настройки мастера; кэшируются на SettingsTTL
func (s *Service) options(ctx context.Context) (app.Options, error) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	now := s.clock.Now()
	if s.cachedSettings == nil || now.Sub(s.settingsAt) >= s.cfg.SettingsTTL {
		settings, err := s.settings.GetSettings(ctx)
		if err != nil {
			if s.cachedSettings == nil {
				s.logger.Error("options: failed to load settings: %v", err)
				return app.Options{}, fmt.Errorf("%w: load settings: %v", ErrInternal, err)
			}
			s.logger.Warn("options: keeping stale settings: %v", err)
		} else {
			s.cachedSettings = settings
			s.settingsAt = now
		}
	}

	return app.Options{Settings: s.cachedSettings, Form: s.cfg.Form}, nil
}

func (s *Service) opened() {
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
}

func (s *Service) closed() {
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
}

// classify приводит ошибки мастера к ошибкам сервиса. Ошибки с текстом для
// клиента уже показаны в сообщении шага и ошибкой запроса не считаются.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, app.ErrStepNotCurrent):
		return fmt.Errorf("%w: %v", ErrStepConflict, err)
	case errors.Is(err, wizard.ErrStepNotFound),
		errors.Is(err, wizard.ErrInvalidEvent),
		errors.Is(err, steps.ErrItemNotFound):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var userFacing interface{ UserMessage() string }
	if errors.As(err, &userFacing) {
		return nil
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}
