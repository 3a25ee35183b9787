package reflectx

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type TestAsset struct {
	Group  string   `json:"group,omitempty"`
	Amount *big.Int `json:"amount,omitempty"`
}

type TestAssets struct {
	Assets []*TestAsset `json:"assets,omitempty"`
}

type TestStructForCall struct{}

func (t *TestStructForCall) Method1(ts *time.Time) bool { return !ts.IsZero() }

func (t *TestStructForCall) Method2(ts time.Time) bool { return !ts.IsZero() }

func (t *TestStructForCall) Method3(d *durationpb.Duration) string { return d.AsDuration().String() }

func (t *TestStructForCall) Method4(in float64) float64 { return in }

func (t *TestStructForCall) Method5(in []float64) int { return len(in) }

func (t *TestStructForCall) Method6(in *big.Int) string { return in.String() }

func (t *TestStructForCall) Method7(in string) string { return in }

func (t *TestStructForCall) Method8(in *string) string { return *in }

func (t *TestStructForCall) Method9(in *int) int { return *in }

func (t *TestStructForCall) Method10(in TestAssets) TestAssets { return in }

func (t *TestStructForCall) Method11(in *TestAssets) *TestAssets { return in }

func (t *TestStructForCall) Method12(in *wrapperspb.StringValue) string { return in.GetValue() }

func TestCall(t *testing.T) {
	input := &TestStructForCall{}

	nowBinary, _ := time.Now().MarshalBinary()

	assets := TestAssets{
		Assets: []*TestAsset{
			{Group: "A", Amount: big.NewInt(1)},
			{Group: "B", Amount: big.NewInt(2)},
		},
	}
	assetsJSON, _ := json.Marshal(assets)

	tests := []struct {
		name      string
		method    string
		args      []string
		wantErr   error
		wantValue any
	}{
		{
			name:    "MethodX unsupported method",
			method:  "MethodX",
			args:    []string{},
			wantErr: ErrMemberNotFound,
		},
		{
			name:      "Method1 with correct time format",
			method:    "Method1",
			args:      []string{time.Now().Format(time.RFC3339)},
			wantValue: true,
		},
		{
			name:      "Method1 with correct binary time format",
			method:    "Method1",
			args:      []string{string(nowBinary)},
			wantValue: true,
		},
		{
			name:      "Method2 with correct time format",
			method:    "Method2",
			args:      []string{time.Now().Format(time.RFC3339)},
			wantValue: true,
		},
		{
			name:      "Method3 with protojson duration",
			method:    "Method3",
			args:      []string{`"90s"`},
			wantValue: "1m30s",
		},
		{
			name:      "Method4 with float input",
			method:    "Method4",
			args:      []string{"1234.5678"},
			wantValue: 1234.5678,
		},
		{
			name:      "Method5 with array input",
			method:    "Method5",
			args:      []string{"[1234.5678, 1234.5678]"},
			wantValue: 2,
		},
		{
			name:    "Method5 with incorrect format",
			method:  "Method5",
			args:    []string{"1234.5678, 1234.5678"},
			wantErr: ErrInvalidArgumentValue,
		},
		{
			name:    "Method5 with incorrect args count",
			method:  "Method5",
			args:    []string{"1234.5678", "1234.5678"},
			wantErr: ErrIncorrectArgumentCount,
		},
		{
			name:      "Method6 with big.Int input",
			method:    "Method6",
			args:      []string{"1234"},
			wantValue: "1234",
		},
		{
			name:    "Method6 with incorrect value type big.Int",
			method:  "Method6",
			args:    []string{"1234.5678"},
			wantErr: ErrInvalidArgumentValue,
		},
		{
			name:      "Method7 with string input",
			method:    "Method7",
			args:      []string{"1234"},
			wantValue: "1234",
		},
		{
			name:      "Method8 with string input",
			method:    "Method8",
			args:      []string{"1234"},
			wantValue: "1234",
		},
		{
			name:      "Method9 with int input",
			method:    "Method9",
			args:      []string{"1234"},
			wantValue: 1234,
		},
		{
			name:      "Method10 with a complex input and output",
			method:    "Method10",
			args:      []string{string(assetsJSON)},
			wantValue: assets,
		},
		{
			name:      "Method11 with a complex input and output",
			method:    "Method11",
			args:      []string{string(assetsJSON)},
			wantValue: &assets,
		},
		{
			name:      "Method12 with a protojson wrapper",
			method:    "Method12",
			args:      []string{`"wrapped"`},
			wantValue: "wrapped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Call(context.Background(), input, tt.method, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantValue, resp)
		})
	}
}

func TestCallHierarchy(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		method    string
		args      []string
		wantErr   error
		wantValue any
	}{
		{
			name:      "declared method",
			method:    "Deposit",
			args:      []string{"5"},
			wantValue: int64(15),
		},
		{
			name:      "promoted method",
			method:    "ID",
			wantValue: "acc-1",
		},
		{
			name:      "method promoted from an unexported embedded field",
			method:    "Entries",
			wantValue: 1,
		},
		{
			name:      "method of an embedded interface",
			method:    "Audit",
			args:      []string{"close"},
			wantValue: "audited close",
		},
		{
			name:      "unexported method through a shim",
			method:    "getBalance",
			wantValue: int64(10),
		},
		{
			name:      "variadic method",
			method:    "Sum",
			args:      []string{"1", "2", "3"},
			wantValue: int64(6),
		},
		{
			name:      "timestamp argument",
			method:    "Schedule",
			args:      []string{`"2024-01-02T03:04:05Z"`},
			wantValue: "2024-01-02T03:04:05Z",
		},
		{
			name:      "text unmarshaler argument",
			method:    "Before",
			args:      []string{"2024-01-02T03:04:05Z"},
			wantValue: true,
		},
		{
			name:    "validated argument",
			method:  "Pay",
			args:    []string{"-5"},
			wantErr: ErrInvalidArgumentValue,
		},
		{
			name:    "callee error",
			method:  "Withdraw",
			args:    []string{"1000"},
			wantErr: ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Call(ctx, newAccount(), tt.method, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantValue, resp)
		})
	}
}

func TestCallDecodeFailureIsInvalidInvocation(t *testing.T) {
	_, err := Call(context.Background(), newAccount(), "Deposit", "ten")
	require.ErrorIs(t, err, ErrInvalidInvocation)
	require.ErrorIs(t, err, ErrInvalidArgumentValue)
	require.False(t, IsCalleeError(err))
}

func TestCallSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})

	_, err := Call(context.Background(), newAccount(), "ID")
	require.NoError(t, err)

	_, err = Call(context.Background(), newAccount(), "Withdraw", "1000")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	require.Equal(t, "reflectx.Call ID", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Contains(t, spans[0].Attributes(), attribute.String("introspect.declaring_type", "reflectx.Identity"))
	require.Contains(t, spans[0].Attributes(), attribute.Bool("introspect.shim", false))

	require.Equal(t, "reflectx.Call Withdraw", spans[1].Name())
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Contains(t, spans[1].Attributes(), attribute.Int("introspect.arg_count", 1))
}

func TestValidateArguments(t *testing.T) {
	acc := newAccount()

	require.NoError(t, ValidateArguments(acc, "Deposit", "1"))
	require.NoError(t, ValidateArguments(acc, "Tag", `["a","b"]`))
	require.ErrorIs(t, ValidateArguments(acc, "Deposit"), ErrIncorrectArgumentCount)
	require.ErrorIs(t, ValidateArguments(acc, "Pay", "-1"), ErrInvalidArgumentValue)
	require.ErrorIs(t, ValidateArguments(acc, "Missing"), ErrMemberNotFound)

	// nothing was invoked
	require.Equal(t, int64(10), acc.balance)
}
