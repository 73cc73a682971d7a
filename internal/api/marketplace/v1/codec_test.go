package marketplacev1

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodec_Registered(t *testing.T) {
	if c := encoding.GetCodec(CodecName); c == nil {
		t.Fatalf("codec %q is not registered", CodecName)
	}
}

func TestCodec_PlainMessage(t *testing.T) {
	at := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	in := &Booking{
		Code:        "BK-20250302-ABCDE",
		ScheduledAt: timestamppb.New(at),
		QuotedPrice: decimal.RequireFromString("708.00"),
		Price:       &PriceBreakdown{Gst: decimal.NewFromInt(108)},
	}

	raw, err := Codec{}.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"quotedPrice":"708"`) {
		t.Fatalf("amount should travel as a decimal string: %s", raw)
	}

	var out Booking
	if err := (Codec{}).Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Code != in.Code || !out.ScheduledAt.AsTime().Equal(at) || !out.QuotedPrice.Equal(in.QuotedPrice) {
		t.Fatalf("unexpected round trip %+v", out)
	}
	if out.Price == nil || !out.Price.Gst.Equal(decimal.NewFromInt(108)) {
		t.Fatalf("price lost: %+v", out.Price)
	}
}

func TestCodec_ProtoMessageUsesProtoJSON(t *testing.T) {
	ts := timestamppb.New(time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC))

	raw, err := Codec{}.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(raw) != `"2025-03-02T10:00:00Z"` {
		t.Fatalf("raw = %s", raw)
	}

	var back timestamppb.Timestamp
	if err := (Codec{}).Unmarshal(raw, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.AsTime().Equal(ts.AsTime()) {
		t.Fatalf("got %s", back.AsTime())
	}
}
