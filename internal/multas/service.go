package multas

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/farxc/frota-multas/internal/logger"
)

const component = "Multas"

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   int64
	Name string
	Role Role
}

// ActivityEntry is one line of the activity log, as emitted after a successful operation.
type ActivityEntry struct {
	Actor             Actor
	Action            Action
	EntityID          int64
	EntityDescription string
	Details           map[string]any
}

// ActivityRecorder appends activity entries. Implementations must not fail the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, e ActivityEntry)
}

type discardActivity struct{}

func (discardActivity) Record(context.Context, ActivityEntry) {}

// Service owns the in-memory working set of multas. Every mutation goes through the
// record store and ends with a full reload; the set is never patched in place.
type Service struct {
	store    RecordStore
	activity ActivityRecorder
	logger   *logger.Logger
	now      func() time.Time

	mu      sync.RWMutex
	records []Multa

	// mutating serializes mutate-then-reload sequences.
	mutating sync.Mutex
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithActivity(r ActivityRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.activity = r
		}
	}
}

func NewService(store RecordStore, log *logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		activity: discardActivity{},
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the reference day for every derivation.
func (s *Service) Today() Date {
	return DateOf(s.now())
}

// Reload replaces the working set with the store's records, recomputing derived statuses.
// On failure the previous set is kept. It waits for any in-flight mutation.
func (s *Service) Reload(ctx context.Context) error {
	s.mutating.Lock()
	defer s.mutating.Unlock()
	return s.reload(ctx)
}

// reload expects s.mutating to be held.
func (s *Service) reload(ctx context.Context) error {
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error(component, "failed to load multas: %v", err)
		return ErrStore.WithMessage("Erro ao carregar multas")
	}

	records = RecomputeAll(records, s.Today())

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Debug(component, "loaded %d multas", len(records))
	return nil
}

// Records returns a copy of the working set.
func (s *Service) Records() []Multa {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Multa, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Service) Get(id int64) (Multa, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.records {
		if m.ID == id {
			return m, nil
		}
	}
	return Multa{}, ErrNotFound.WithMessagef("multa %d não encontrada", id)
}

// Aggregator builds the role's view of the current working set.
func (s *Service) Aggregator(role Role) *Aggregator {
	return NewAggregator(s.Records(), role, s.Today())
}

func (s *Service) authorize(actor Actor, a Action) error {
	if !PermissionsFor(actor.Role).Allows(a) {
		return ErrForbidden.WithMessagef("perfil %q não pode executar %q", actor.Role, a.Label())
	}
	return nil
}

func (s *Service) storeFailure(op string, err error) error {
	if errors.Is(err, ErrDuplicateAuto) || errors.Is(err, ErrNotFound) {
		return err
	}
	s.logger.Error(component, "%s failed: %v", op, err)
	return ErrStore.WithMessage("Erro ao salvar alterações")
}

// afterMutation reloads and logs the operation. The mutation already happened, so a
// failed reload is only logged; the next reload picks the change up.
func (s *Service) afterMutation(ctx context.Context, e ActivityEntry) {
	if err := s.reload(ctx); err != nil {
		s.logger.Warn(component, "reload after %s failed: %v", e.Action, err)
	}
	s.activity.Record(ctx, e)
}

func entryFor(actor Actor, a Action, m Multa, details map[string]any) ActivityEntry {
	return ActivityEntry{
		Actor:             actor,
		Action:            a,
		EntityID:          m.ID,
		EntityDescription: m.Label(),
		Details:           details,
	}
}

// Create inserts a new multa after checking that its auto code is unused.
func (s *Service) Create(ctx context.Context, actor Actor, in Input) (Multa, error) {
	if err := s.authorize(actor, ActionCreate); err != nil {
		return Multa{}, err
	}
	if err := in.Validate(); err != nil {
		return Multa{}, err
	}

	s.mutating.Lock()
	defer s.mutating.Unlock()

	auto := strings.TrimSpace(in.AutoInfracao)
	exists, err := s.store.ExistsAutoInfracao(ctx, auto)
	if err != nil {
		return Multa{}, s.storeFailure("uniqueness check", err)
	}
	if exists {
		return Multa{}, ErrDuplicateAuto.WithMessagef("Já existe uma multa com o Auto de Infração %s", auto)
	}

	var m Multa
	in.apply(&m)
	today := s.Today()
	m.StatusBoleto = derivedBoleto(m, today)
	if m.Liability == LiabilityMotorista {
		m.StatusIndicacao = DeriveIndicacaoStatus(IndicacaoInput{Deadline: m.ExpiracaoIndicacao}, today)
	} else {
		m.ExpiracaoIndicacao = ""
		m.StatusIndicacao = IndicacaoNone
	}

	if err := s.store.Insert(ctx, &m); err != nil {
		return Multa{}, s.storeFailure("insert", err)
	}

	s.logger.Info(component, "multa %d created by %s (%s)", m.ID, actor.Name, m.AutoInfracao)
	s.afterMutation(ctx, entryFor(actor, ActionCreate, m, nil))
	return m, nil
}

// Edit replaces every editable field of a multa. The slip status is derived again from
// the new link and due date; manual payment states are not carried over.
func (s *Service) Edit(ctx context.Context, actor Actor, id int64, in Input) (Multa, error) {
	if err := s.authorize(actor, ActionEdit); err != nil {
		return Multa{}, err
	}
	if err := in.Validate(); err != nil {
		return Multa{}, err
	}

	s.mutating.Lock()
	defer s.mutating.Unlock()

	current, err := s.Get(id)
	if err != nil {
		return Multa{}, err
	}

	auto := strings.TrimSpace(in.AutoInfracao)
	if auto != current.AutoInfracao {
		exists, err := s.store.ExistsAutoInfracao(ctx, auto)
		if err != nil {
			return Multa{}, s.storeFailure("uniqueness check", err)
		}
		if exists {
			return Multa{}, ErrDuplicateAuto.WithMessagef("Já existe uma multa com o Auto de Infração %s", auto)
		}
	}

	m := current
	in.apply(&m)
	today := s.Today()
	m.StatusBoleto = derivedBoleto(m, today)
	switch {
	case m.Liability != LiabilityMotorista:
		m.ExpiracaoIndicacao = ""
		m.StatusIndicacao = IndicacaoNone
	case current.Liability == LiabilityMotorista && current.StatusIndicacao.Protected():
		m.StatusIndicacao = current.StatusIndicacao
	default:
		m.StatusIndicacao = DeriveIndicacaoStatus(IndicacaoInput{Deadline: m.ExpiracaoIndicacao}, today)
	}

	if err := s.store.Replace(ctx, m); err != nil {
		return Multa{}, s.storeFailure("update", err)
	}

	s.logger.Info(component, "multa %d edited by %s", m.ID, actor.Name)
	s.afterMutation(ctx, entryFor(actor, ActionEdit, m, nil))
	return m, nil
}

func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := s.authorize(actor, ActionDelete); err != nil {
		return err
	}

	s.mutating.Lock()
	defer s.mutating.Unlock()

	m, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeFailure("delete", err)
	}

	s.logger.Info(component, "multa %d deleted by %s", id, actor.Name)
	s.afterMutation(ctx, entryFor(actor, ActionDelete, m, nil))
	return nil
}

// MarkPaid registers the payment of an available slip. proof is an optional receipt URL.
func (s *Service) MarkPaid(ctx context.Context, actor Actor, id int64, proof string) (Multa, error) {
	return s.transition(ctx, actor, id, ActionMarkPaid, func(m Multa, p *Patch) map[string]any {
		if proof = strings.TrimSpace(proof); proof != "" {
			p.ComprovantePagamento = &proof
		}
		return map[string]any{"motorista": m.Motorista, "valor": FormatAmount(m.ValorBoleto)}
	})
}

func (s *Service) UnmarkPaid(ctx context.Context, actor Actor, id int64) (Multa, error) {
	return s.transition(ctx, actor, id, ActionUnmarkPaid, nil)
}

// MarkComplete confirms that the payroll deduction of a driver-paid fine happened.
func (s *Service) MarkComplete(ctx context.Context, actor Actor, id int64) (Multa, error) {
	return s.transition(ctx, actor, id, ActionMarkComplete, func(m Multa, _ *Patch) map[string]any {
		return map[string]any{"motorista": m.Motorista}
	})
}

func (s *Service) UndoComplete(ctx context.Context, actor Actor, id int64) (Multa, error) {
	return s.transition(ctx, actor, id, ActionUndoComplete, nil)
}

func (s *Service) Indicate(ctx context.Context, actor Actor, id int64) (Multa, error) {
	return s.transition(ctx, actor, id, ActionIndicate, func(m Multa, _ *Patch) map[string]any {
		return map[string]any{"motorista": m.Motorista}
	})
}

func (s *Service) UndoIndication(ctx context.Context, actor Actor, id int64) (Multa, error) {
	return s.transition(ctx, actor, id, ActionUndoIndication, nil)
}

func (s *Service) RefuseIndication(ctx context.Context, actor Actor, id int64) (Multa, error) {
	return s.transition(ctx, actor, id, ActionRefuseIndication, func(m Multa, _ *Patch) map[string]any {
		return map[string]any{"motorista": m.Motorista}
	})
}

// transition runs one entry of the transition table against the current record. extra may
// add fields to the patch and returns the activity details.
func (s *Service) transition(ctx context.Context, actor Actor, id int64, a Action, extra func(Multa, *Patch) map[string]any) (Multa, error) {
	if err := s.authorize(actor, a); err != nil {
		return Multa{}, err
	}

	s.mutating.Lock()
	defer s.mutating.Unlock()

	m, err := s.Get(id)
	if err != nil {
		return Multa{}, err
	}

	patch, err := Transition(a, m, s.Today())
	if err != nil {
		return Multa{}, err
	}

	var details map[string]any
	if extra != nil {
		details = extra(m, &patch)
	}

	if err := s.store.Patch(ctx, id, patch); err != nil {
		return Multa{}, s.storeFailure(string(a), err)
	}

	updated := ApplyPatch(m, patch)
	s.logger.Info(component, "multa %d: %s by %s (%s -> %s)", id, a, actor.Name, m.StatusBoleto, updated.StatusBoleto)
	s.afterMutation(ctx, entryFor(actor, a, m, details))
	return updated, nil
}
