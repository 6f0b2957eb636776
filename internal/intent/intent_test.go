package intent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stevehamwu/BeverageIntentRecognition/internal/common/errors"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/common/logger"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/cache"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/fallback"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/intent/llm"
	"github.com/stevehamwu/BeverageIntentRecognition/internal/models"
)

// fakeClient scripts the completion leg: a fixed reply or a fixed error.
type fakeClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	pingErr error
	calls   int
}

func (f *fakeClient) Complete(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Ping(_ context.Context) error {
	return f.pingErr
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(t *testing.T, client CompletionClient) *Service {
	t.Helper()
	svc, err := NewService(client, cache.NewMemory(), time.Hour, logger.NewTestLogger(t), nil)
	require.NoError(t, err)
	return svc
}

func TestClassify_LLMPath(t *testing.T) {
	client := &fakeClient{
		reply: `{"intent": "grab_drink", "confidence": 0.95, "entities": {"drink_name": "美式", "size": "大杯", "temperature": "冰"}}`,
	}
	svc := newTestService(t, client)

	result, err := svc.Classify(context.Background(), "给我来一杯大杯冰美式", "")
	require.NoError(t, err)

	assert.Equal(t, models.IntentGrabDrink, result.Intent)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.Equal(t, "美式", result.Entities[models.EntityDrinkName])
	assert.Equal(t, "大杯", result.Entities[models.EntitySize])
	assert.Equal(t, "冰", result.Entities[models.EntityTemperature])
	// Quantity was not in the reply; the extractor backfills it from "一杯".
	assert.Equal(t, 1, result.Entities[models.EntityQuantity])
	assert.NotEmpty(t, result.RawText)
}

func TestClassify_RepeatHitsCache(t *testing.T) {
	client := &fakeClient{
		reply: `{"intent": "deliver_drink", "confidence": 0.9, "entities": {"drink_name": "咖啡", "location": "会议室"}}`,
	}
	svc := newTestService(t, client)
	ctx := context.Background()

	first, err := svc.Classify(ctx, "把咖啡送到会议室", "")
	require.NoError(t, err)

	second, err := svc.Classify(ctx, "把咖啡送到会议室", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.callCount(), "second call must be served from cache")
}

func TestClassify_TransportFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"timeout", llm.ErrTimeout},
		{"connection refused", llm.ErrConnection},
		{"http 502", &llm.HTTPError{Status: 502}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &fakeClient{err: tt.err})

			result, err := svc.Classify(context.Background(), "把咖啡送到会议室", "")
			require.NoError(t, err, "transport failures must not surface to callers")

			assert.Equal(t, models.IntentDeliverDrink, result.Intent)
			assert.LessOrEqual(t, result.Confidence, fallback.MaxConfidence)
			assert.Equal(t, "咖啡", result.Entities[models.EntityDrinkName])
			assert.Equal(t, "会议室", result.Entities[models.EntityLocation])
			assert.Empty(t, result.RawText, "fallback results carry no raw reply")
		})
	}
}

func TestClassify_MalformedReplyFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"prose only", "抱歉，我不确定你想要什么。"},
		{"unrecognized intent", `好的。{"intent": "order_pizza", "confidence": 0.9, "entities": {}}`},
		{"missing confidence", `{"intent": "grab_drink", "entities": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &fakeClient{reply: tt.reply})

			result, err := svc.Classify(context.Background(), "取消刚才的订单", "")
			require.NoError(t, err)
			assert.Equal(t, models.IntentCancelOrder, result.Intent)
			assert.LessOrEqual(t, result.Confidence, fallback.MaxConfidence)
		})
	}
}

func TestClassify_EmptyInputRejected(t *testing.T) {
	svc := newTestService(t, &fakeClient{reply: "{}"})

	for _, input := range []string{"", "   ", "\t\n"} {
		result, err := svc.Classify(context.Background(), input, "")
		assert.Nil(t, result)
		require.Error(t, err)

		var stdErr *apperrors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, apperrors.ErrCodeInvalidInput, stdErr.Code)
	}
}

func TestClassify_LLMEntityWinsOverExtractor(t *testing.T) {
	// The model and the extractor disagree on drink_name; the model's
	// normalized value must stand.
	client := &fakeClient{
		reply: `{"intent": "grab_drink", "confidence": 0.9, "entities": {"drink_name": "拿铁"}}`,
	}
	svc := newTestService(t, client)

	result, err := svc.Classify(context.Background(), "给我来一杯美式", "")
	require.NoError(t, err)
	assert.Equal(t, "拿铁", result.Entities[models.EntityDrinkName])
}

func TestClassify_ContextSeparatesCacheEntries(t *testing.T) {
	client := &fakeClient{
		reply: `{"intent": "modify_order", "confidence": 0.9, "entities": {"temperature": "热"}}`,
	}
	svc := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Classify(ctx, "换成热的", "")
	require.NoError(t, err)
	_, err = svc.Classify(ctx, "换成热的", "用户刚点了一杯冰拿铁")
	require.NoError(t, err)

	assert.Equal(t, 2, client.callCount(), "different context must miss the cache")
}

func TestClassify_Deterministic(t *testing.T) {
	svc := newTestService(t, &fakeClient{err: llm.ErrConnection})
	ctx := context.Background()

	first, err := svc.Classify(ctx, "推荐点提神的饮料", "")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := svc.Classify(ctx, "推荐点提神的饮料", "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClearCache(t *testing.T) {
	client := &fakeClient{
		reply: `{"intent": "query_status", "confidence": 0.9, "entities": {}}`,
	}
	svc := newTestService(t, client)
	ctx := context.Background()

	_, err := svc.Classify(ctx, "我的咖啡好了吗", "")
	require.NoError(t, err)
	require.NoError(t, svc.ClearCache(ctx))

	_, err = svc.Classify(ctx, "我的咖啡好了吗", "")
	require.NoError(t, err)
	assert.Equal(t, 2, client.callCount())
}

func TestPing(t *testing.T) {
	svc := newTestService(t, &fakeClient{pingErr: errors.New("down")})
	assert.Error(t, svc.Ping(context.Background()))

	svc = newTestService(t, &fakeClient{})
	assert.NoError(t, svc.Ping(context.Background()))
}
