package contingency

//go:generate mockgen -source=processor.go -destination=mocks/mocks.go -package=mocks Signer,Transmitter

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"facturador/internal/audit"
	"facturador/internal/contingency/mocks"
	"facturador/internal/dte"
	"facturador/internal/mh"
	domainerrors "facturador/pkg/domain-errors"
)

type ProcessorSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	signer   *mocks.MockSigner
	transmit *mocks.MockTransmitter
	store    *MemoryStore
	proc     *Processor
	ctx      context.Context
	token    *mh.TokenInfo
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorSuite))
}

func (s *ProcessorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.signer = mocks.NewMockSigner(s.ctrl)
	s.transmit = mocks.NewMockTransmitter(s.ctrl)
	s.store = NewMemoryStore()
	s.proc = NewProcessor(s.store, s.signer, s.transmit, log.New(io.Discard, "", 0))
	s.ctx = context.Background()
	s.token = &mh.TokenInfo{
		Token:       "tok",
		Environment: mh.EnvTest,
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func (s *ProcessorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ProcessorSuite) enqueue(code string) *QueuedDocument {
	doc := NewQueuedDocument("0614-123456-001-2", dte.KindFactura, code,
		"DTE-01-M001-P001-000000000000001", json.RawMessage(`{"codigoGeneracion":"`+code+`"}`), time.Now())
	require.NoError(s.T(), s.store.Enqueue(s.ctx, doc))
	return doc
}

func acceptedReceipt(sello string) *mh.Receipt {
	return &mh.Receipt{Estado: "PROCESADO", SelloRecibido: sello}
}

func (s *ProcessorSuite) TestReplayCompletes() {
	doc := s.enqueue("CODE-1")

	s.signer.EXPECT().SignRaw(gomock.Nil(), []byte(doc.Document)).Return("signed.jws", nil)
	s.transmit.EXPECT().Transmit(s.ctx, s.token, dte.KindFactura, "signed.jws", "CODE-1").
		Return(acceptedReceipt("SELLO-1"), nil)

	result, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), BatchResult{Processed: 1, Completed: 1}, result)

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateCompleted, got.State)
	assert.Equal(s.T(), "SELLO-1", got.SelloRecibido)
	assert.Equal(s.T(), 1, got.Attempts)
	assert.Empty(s.T(), got.LastError)
}

func (s *ProcessorSuite) TestTransportFailureRequeues() {
	doc := s.enqueue("CODE-1")

	s.signer.EXPECT().SignRaw(gomock.Any(), gomock.Any()).Return("signed.jws", nil)
	s.transmit.EXPECT().Transmit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domainerrors.New(domainerrors.CodeTimeout, "MH did not answer in time"))

	result, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), BatchResult{Processed: 1, Requeued: 1}, result)

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateQueued, got.State)
	assert.Equal(s.T(), 1, got.Attempts)
	assert.Contains(s.T(), got.LastError, "did not answer")
}

func (s *ProcessorSuite) TestFifthFailureIsPermanent() {
	doc := s.enqueue("CODE-1")

	s.signer.EXPECT().SignRaw(gomock.Any(), gomock.Any()).Return("signed.jws", nil).Times(5)
	s.transmit.EXPECT().Transmit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domainerrors.New(domainerrors.CodeTransport, "could not reach MH")).Times(5)

	for i := 0; i < 5; i++ {
		_, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
		require.NoError(s.T(), err)
	}

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateFailed, got.State)
	assert.Equal(s.T(), 5, got.Attempts)

	// Failed documents are never picked up again.
	result, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)
	assert.Zero(s.T(), result.Processed)
}

func (s *ProcessorSuite) TestRejectedReceiptCountsAsFailure() {
	doc := s.enqueue("CODE-1")

	s.signer.EXPECT().SignRaw(gomock.Any(), gomock.Any()).Return("signed.jws", nil)
	s.transmit.EXPECT().Transmit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&mh.Receipt{Estado: "RECHAZADO", DescripcionMsg: "numero de control duplicado"}, nil)

	_, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateQueued, got.State)
	assert.Contains(s.T(), got.LastError, "numero de control duplicado")
}

func (s *ProcessorSuite) TestSignFailureRequeuesWithoutTransmitting() {
	doc := s.enqueue("CODE-1")

	s.signer.EXPECT().SignRaw(gomock.Any(), gomock.Any()).
		Return("", domainerrors.New(domainerrors.CodeSessionDestroyed, "certificate session destroyed"))

	_, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), StateQueued, got.State)
	assert.Contains(s.T(), got.LastError, "destroyed")
}

type recordingAudit struct {
	events []audit.Event
}

func (r *recordingAudit) Emit(e audit.Event) { r.events = append(r.events, e) }

func (s *ProcessorSuite) TestReplayOutcomesAreAudited() {
	rec := &recordingAudit{}
	s.proc = NewProcessor(s.store, s.signer, s.transmit, log.New(io.Discard, "", 0),
		WithAuditPublisher(rec))
	s.enqueue("CODE-1")

	s.signer.EXPECT().SignRaw(gomock.Any(), gomock.Any()).Return("signed.jws", nil)
	s.transmit.EXPECT().Transmit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(acceptedReceipt("SELLO-1"), nil)

	_, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)

	require.Len(s.T(), rec.events, 1)
	assert.Equal(s.T(), audit.ActionDocumentReplayed, rec.events[0].Action)
	assert.Equal(s.T(), "CODE-1", rec.events[0].CodigoGeneracion)
	assert.Equal(s.T(), "SELLO-1", rec.events[0].SelloRecibido)
}

func (s *ProcessorSuite) TestErrorMessagesAreTruncated() {
	doc := s.enqueue("CODE-1")

	long := strings.Repeat("x", 2000)
	s.signer.EXPECT().SignRaw(gomock.Any(), gomock.Any()).Return("signed.jws", nil)
	s.transmit.EXPECT().Transmit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domainerrors.New(domainerrors.CodeTransport, long))

	_, err := s.proc.ProcessBatch(s.ctx, s.token, nil, 10)
	require.NoError(s.T(), err)

	got, err := s.store.Get(s.ctx, doc.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), got.LastError, errExcerptLen)
}
