package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

// Step is the ordered position in the order workflow.
type Step int

const (
	StepSelection Step = iota + 1
	StepConfiguration
	StepDetails
	StepConfirmation
)

// String implements fmt.Stringer.
func (s Step) String() string {
	switch s {
	case StepSelection:
		return "selection"
	case StepConfiguration:
		return "configuration"
	case StepDetails:
		return "details"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// Quantity bounds enforced by the clamp.
const (
	MinQuantity = 1
	MaxQuantity = 10000
)

// ErrorKind classifies the recoverable failures a session surfaces.
type ErrorKind string

const (
	ErrorCatalogUnavailable ErrorKind = "catalog_unavailable"
	ErrorQuoteFailed        ErrorKind = "quote_failed"
	ErrorOrderCreation      ErrorKind = "order_creation_failed"
	ErrorGeneration         ErrorKind = "generation_failed"
)

// Notice is a non-fatal, user-visible error record. The workflow stays
// resumable after every notice.
type Notice struct {
	Kind ErrorKind
	Err  error
}

// Draft is the in-progress order owned by the session. It persists across
// backward and forward navigation for the whole session.
type Draft struct {
	BarcodeType string
	Quantity    int
	Customer    types.CustomerDetails
}

// Session drives one buyer through selection, configuration, details, and
// confirmation. It holds all state for a single order; nothing is global.
type Session struct {
	catalogClient    CatalogClient
	pricingClient    PricingClient
	orderClient      OrderClient
	generationClient GenerationClient
	saver            Saver
	logg             *logger.Logger
	quoteRetries     uint64
	quoteBackoff     time.Duration

	mu       sync.Mutex
	inflight sync.WaitGroup
	step     Step
	catalog  map[string]Standard
	draft    Draft
	quote    *Quote
	issued   uint64 // sequence of the newest quote request
	applied  uint64 // sequence of the displayed quote
	order    *Order
	busy     bool
	notices  []Notice
}

// SessionParams collects the session collaborators.
type SessionParams struct {
	Catalog    CatalogClient
	Pricing    PricingClient
	Orders     OrderClient
	Generation GenerationClient
	Saver      Saver
	Logger     *logger.Logger

	// Quote calls retry with exponential backoff; they are frequent and safe
	// to repeat. Zero values pick the defaults.
	QuoteRetries uint64
	QuoteBackoff time.Duration
}

// NewSession builds a session at the selection step with an empty draft.
func NewSession(params SessionParams) (*Session, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog client required")
	}
	if params.Pricing == nil {
		return nil, fmt.Errorf("pricing client required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order client required")
	}
	if params.Generation == nil {
		return nil, fmt.Errorf("generation client required")
	}
	if params.Saver == nil {
		return nil, fmt.Errorf("saver required")
	}
	if params.QuoteRetries == 0 {
		params.QuoteRetries = 3
	}
	if params.QuoteBackoff <= 0 {
		params.QuoteBackoff = 200 * time.Millisecond
	}
	return &Session{
		catalogClient:    params.Catalog,
		pricingClient:    params.Pricing,
		orderClient:      params.Orders,
		generationClient: params.Generation,
		saver:            params.Saver,
		logg:             params.Logger,
		quoteRetries:     params.QuoteRetries,
		quoteBackoff:     params.QuoteBackoff,
		step:             StepSelection,
		catalog:          map[string]Standard{},
		draft:            Draft{Quantity: MinQuantity},
	}, nil
}

// Start fetches the standards catalog. A failure leaves the catalog empty and
// the selection step with nothing selectable; the error is recorded and
// returned but the session stays usable for a retry.
func (s *Session) Start(ctx context.Context) error {
	standards, err := s.catalogClient.ListStandards(ctx)
	if err != nil {
		s.recordNotice(ctx, ErrorCatalogUnavailable, err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch standards catalog")
	}

	s.mu.Lock()
	s.catalog = standards
	s.mu.Unlock()
	return nil
}

// Standards returns the catalog sorted by key.
func (s *Session) Standards() []Standard {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Standard, 0, len(s.catalog))
	for _, standard := range s.catalog {
		out = append(out, standard)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SelectStandard sets the draft's barcode type. No remote effect.
func (s *Session) SelectStandard(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog[key]; !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown barcode type %q", key))
	}
	s.draft.BarcodeType = key
	return nil
}

// SetQuantity clamps n into [MinQuantity, MaxQuantity], stores it, and
// requests a fresh quote. The clamped value is returned.
func (s *Session) SetQuantity(ctx context.Context, n int) int {
	if n < MinQuantity {
		n = MinQuantity
	}
	if n > MaxQuantity {
		n = MaxQuantity
	}

	s.mu.Lock()
	s.draft.Quantity = n
	s.mu.Unlock()

	s.RequestQuote(ctx)
	return n
}

// SetCustomerField updates one customer detail. Setting the state re-quotes
// because jurisdiction drives the tax regime.
func (s *Session) SetCustomerField(ctx context.Context, field, value string) error {
	s.mu.Lock()
	switch field {
	case "name":
		s.draft.Customer.Name = value
	case "surname":
		s.draft.Customer.Surname = value
	case "organization":
		s.draft.Customer.Organization = value
	case "country":
		s.draft.Customer.Country = value
	case "address":
		s.draft.Customer.Address = value
	case "phone":
		s.draft.Customer.Phone = value
	case "email":
		s.draft.Customer.Email = value
	case "gst_number":
		s.draft.Customer.GSTNumber = value
	case "state":
		s.draft.Customer.State = value
		s.mu.Unlock()
		s.RequestQuote(ctx)
		return nil
	default:
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown customer field %q", field))
	}
	s.mu.Unlock()
	return nil
}

// RequestQuote asynchronously reprices the current draft. Responses carry the
// sequence number and triple they were issued for; stale responses are
// discarded so the last request always wins.
func (s *Session) RequestQuote(ctx context.Context) {
	s.mu.Lock()
	if s.draft.BarcodeType == "" || s.draft.Quantity <= 0 {
		s.mu.Unlock()
		return
	}
	s.issued++
	seq := s.issued
	triple := s.tripleLocked()
	s.mu.Unlock()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		quote, err := s.fetchQuote(ctx, triple)
		s.applyQuote(ctx, seq, triple, quote, err)
	}()
}

// WaitQuotes blocks until every in-flight quote request has resolved.
func (s *Session) WaitQuotes() {
	s.inflight.Wait()
}

func (s *Session) fetchQuote(ctx context.Context, triple Triple) (*Quote, error) {
	backoff := retry.WithMaxRetries(s.quoteRetries, retry.NewExponential(s.quoteBackoff))
	var quote *Quote
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		quote, err = s.pricingClient.QuotePrice(ctx, triple.BarcodeType, triple.Quantity, triple.State)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *Session) applyQuote(ctx context.Context, seq uint64, triple Triple, quote *Quote, err error) {
	if err != nil {
		// Non-fatal: the previous quote stays on display.
		s.recordNotice(ctx, ErrorQuoteFailed, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return
	}
	if triple != s.tripleLocked() {
		return
	}
	quote.Triple = triple
	s.quote = quote
	s.applied = seq
}

// Advance moves forward one step if the guard for the current step passes.
// The details step only advances through CommitOrder.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.step {
	case StepSelection:
		if s.draft.BarcodeType == "" {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "select a barcode type first")
		}
		s.step = StepConfiguration
	case StepConfiguration:
		if s.draft.Quantity < MinQuantity || s.draft.Quantity > MaxQuantity {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "quantity out of range")
		}
		s.step = StepDetails
	case StepDetails:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "details advance through order commit")
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "already at the final step")
	}
	return nil
}

// Back moves one step toward selection. Entered data is never cleared.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepSelection {
		s.step--
	}
}

// CommitOrder submits the draft. On success the session stores the returned
// order and advances to confirmation; on failure it stays on details and the
// error is recoverable. Re-committing after back-navigation creates a new
// order; the prior one is not voided.
func (s *Session) CommitOrder(ctx context.Context) error {
	if err := s.acquireBusy(); err != nil {
		return err
	}
	defer s.releaseBusy()

	s.mu.Lock()
	if s.step != StepDetails {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeStateConflict, "commit is only available from the details step")
	}
	draft := s.draft
	s.mu.Unlock()

	if !draft.Customer.HasMinimumContact() {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name and email are required")
	}

	order, err := s.orderClient.CreateOrder(ctx, draft.BarcodeType, draft.Quantity, draft.Customer)
	if err != nil {
		s.recordNotice(ctx, ErrorOrderCreation, err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	s.mu.Lock()
	s.order = order
	s.step = StepConfirmation
	s.mu.Unlock()
	return nil
}

// GenerateAndDownload requests the deliverable package for the committed
// order and hands it to the saver as barcodes_<orderID>.zip. Without an order
// it is a no-op.
func (s *Session) GenerateAndDownload(ctx context.Context) error {
	s.mu.Lock()
	order := s.order
	s.mu.Unlock()
	if order == nil {
		return nil
	}

	if err := s.acquireBusy(); err != nil {
		return err
	}
	defer s.releaseBusy()

	payload, err := s.generationClient.GeneratePackage(ctx, order.ID)
	if err != nil {
		s.recordNotice(ctx, ErrorGeneration, err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate package")
	}

	filename := fmt.Sprintf("barcodes_%s.zip", order.ID)
	if err := s.saver.Save(filename, payload); err != nil {
		s.recordNotice(ctx, ErrorGeneration, err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save package")
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID)
		s.logg.Info(s.logg.WithField(ctx, "filename", filename), "package downloaded")
	}
	return nil
}

// Step returns the current workflow position.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Draft returns a copy of the in-progress order.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Quote returns the displayed quote, or nil when no quote matching the
// current pricing triple has been applied. A quote issued for other inputs is
// never shown.
func (s *Session) Quote() *Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quote == nil || s.quote.Triple != s.tripleLocked() {
		return nil
	}
	copied := *s.quote
	return &copied
}

// Order returns the committed order, or nil before commit.
func (s *Session) Order() *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return nil
	}
	copied := *s.order
	return &copied
}

// Busy reports whether a commit or generation call is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Notices returns the recoverable errors surfaced so far.
func (s *Session) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

func (s *Session) tripleLocked() Triple {
	return Triple{
		BarcodeType: s.draft.BarcodeType,
		Quantity:    s.draft.Quantity,
		State:       strings.TrimSpace(s.draft.Customer.State),
	}
}

// acquireBusy is the mutual-exclusion guard: one commit or generation call at
// a time per session.
func (s *Session) acquireBusy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return pkgerrors.New(pkgerrors.CodeConflict, "another operation is in progress")
	}
	s.busy = true
	return nil
}

func (s *Session) releaseBusy() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) recordNotice(ctx context.Context, kind ErrorKind, err error) {
	s.mu.Lock()
	s.notices = append(s.notices, Notice{Kind: kind, Err: err})
	s.mu.Unlock()
	if s.logg != nil {
		s.logg.Error(s.logg.WithField(ctx, "kind", string(kind)), "workflow notice", err)
	}
}
