package exchange

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/janis-sijanovs/mover-tracker/internal/metrics"
	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

type markPriceEnvelope struct {
	Stream string            `json:"stream"`
	Data   []markPriceUpdate `json:"data"`
}

type markPriceUpdate struct {
	EventType string `json:"e"`
	Symbol    string `json:"s"`
	MarkPrice string `json:"p"`
	EventTime int64  `json:"E"`
}

func (f *Feed) runBinance(ctx context.Context, out chan<- []signal.Tick) error {
	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.consumeMarkPriceStream(ctx, out); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.log.Warn().Err(err).Msg("mark-price feed disconnected, retrying")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(math.Min(float64(maxBackoff), float64(backoff)*1.8))
			continue
		}
		return nil
	}
}

func (f *Feed) consumeMarkPriceStream(ctx context.Context, out chan<- []signal.Tick) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, f.endpoint, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	f.log.Info().Str("provider", ProviderBinance).Str("endpoint", f.endpoint).Msg("connected mark-price feed")

	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	pingCtx, pingCancel := context.WithCancel(ctx)
	defer pingCancel()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					f.log.Warn().Err(err).Msg("ping failed")
					return
				}
			case <-pingCtx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		batch, err := f.parseMarkPriceFrame(message)
		if err != nil {
			f.log.Warn().Err(err).Msg("failed to decode mark-price message")
			continue
		}
		if len(batch) == 0 {
			continue
		}

		select {
		case out <- batch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// parseMarkPriceFrame converts one combined-stream frame into a tick batch,
// dropping elements with unparseable prices.
func (f *Feed) parseMarkPriceFrame(message []byte) ([]signal.Tick, error) {
	var env markPriceEnvelope
	if err := json.Unmarshal(message, &env); err != nil {
		return nil, err
	}

	batch := make([]signal.Tick, 0, len(env.Data))
	for _, update := range env.Data {
		if !f.keep(update.Symbol) {
			continue
		}
		px, err := strconv.ParseFloat(update.MarkPrice, 64)
		if err != nil || px <= 0 {
			f.log.Warn().Str("sym", update.Symbol).Str("px", update.MarkPrice).Msg("invalid mark price")
			continue
		}
		batch = append(batch, signal.Tick{
			Symbol: update.Symbol,
			Price:  px,
			Ts:     time.UnixMilli(update.EventTime),
		})
		metrics.TicksTotal.WithLabelValues(update.Symbol).Inc()
	}
	return batch, nil
}
