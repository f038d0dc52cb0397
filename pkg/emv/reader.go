package emv

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"

	"github.com/tapscan/emv-pan/pkg/iso7816"
	"github.com/tapscan/emv-pan/pkg/tlv"
)

// Exchanger carries one command APDU to the card and returns the response
// payload, with transport framing and status word already verified and
// stripped.
type Exchanger interface {
	Exchange(apdu []byte) ([]byte, error)
}

// Config tunes the read flow.
type Config struct {
	// Attempts bounds how often application selection and GET PROCESSING
	// OPTIONS are reissued back to back before the read is abandoned. The
	// PPSE selection is never retried.
	Attempts int
}

// DefaultConfig matches the behavior of a payment terminal reading a card
// held against the antenna for a moment.
var DefaultConfig = Config{Attempts: 3}

// Reader drives the contactless PAN extraction flow over an Exchanger.
type Reader struct {
	card   Exchanger
	config Config
	log    *slog.Logger
}

// NewReader returns a Reader for one card presentation.
func NewReader(card Exchanger, config Config) *Reader {
	if config.Attempts < 1 {
		config.Attempts = 1
	}
	return &Reader{
		card:   card,
		config: config,
		log:    slog.Default().With("component", "emv"),
	}
}

// panDecoders lists the record tags that can carry the PAN, in probe
// order. The first tag present in a record settles the read, whether or
// not its value decodes.
var panDecoders = []struct {
	tag    tlv.Tag
	name   string
	decode func([]byte) (Digits, error)
}{
	{TagTrack2, "track 2", ParseTrack2},
	{TagTrack1, "track 1", ParseTrack1},
	{TagPAN, "pan", ParsePAN},
}

// ReadPAN walks the contactless selection flow until a PAN is decoded:
// select the PPSE, select the first application it advertises, issue GET
// PROCESSING OPTIONS with a synthesized PDOL, then read the records the
// AFL names until one carries a track or PAN tag.
func (r *Reader) ReadPAN() (Digits, error) {
	ppse, err := r.exchangeCmd(iso7816.SelectByName([]byte(PPSE)))
	if err != nil {
		return nil, err
	}

	aid := tlv.Find(ppse, TagAID)
	if len(aid) == 0 {
		return nil, ErrNoApplication
	}
	r.log.Debug("found application", "aid", tlv.Pretty(aid))
	r.describeSelection(ppse)

	selection, err := r.exchangeRetry(iso7816.SelectByName(aid))
	if err != nil {
		return nil, err
	}
	r.describeSelection(selection)

	pdolList := tlv.Find(selection, TagCommandTemplate)
	r.log.Debug("card requests processing options", "pdol", tlv.Pretty(pdolList))

	gpo, err := r.exchangeRetry(GetProcessingOptions(SynthesizePDOL(pdolList)))
	if err != nil {
		return nil, err
	}
	r.logTagCensus("processing options delivered", gpo)

	// Some cards hand over track 2 data right here. That still ends the
	// read without a result.
	if track2 := tlv.Find(gpo, TagTrack2); len(track2) > 0 {
		if digits, err := ParseTrack2(track2); err != nil {
			r.log.Debug("early track 2 rejected", "error", err)
		} else {
			r.log.Debug("early track 2 decoded", "pan", digits.Masked())
		}
		return nil, ErrEarlyTrack2
	}

	afl := AFL(tlv.Find(gpo, TagAFL))
	if err := afl.Validate(); err != nil {
		return nil, err
	}

	for _, g := range afl.Groups() {
		r.log.Debug("reading file", "sfi", g.SFI, "first", g.Start, "last", g.End)
		for rec := g.Start; rec <= g.End; rec++ {
			payload, err := r.exchangeCmd(iso7816.ReadRecord(g.SFI, rec))
			if err != nil {
				r.log.Debug("record read failed", "sfi", g.SFI, "record", rec, "error", err)
				continue
			}
			r.describeRecord(payload)

			for _, d := range panDecoders {
				value := tlv.Find(payload, d.tag)
				runtime.Gosched() // cooperative yield between probes
				if len(value) == 0 {
					continue
				}
				digits, err := d.decode(value)
				if err != nil {
					return nil, err
				}
				r.log.Info("pan decoded", "source", d.name, "pan", digits.Masked())
				return digits, nil
			}
		}
	}

	return nil, ErrNoPAN
}

// exchangeCmd encodes and sends a single command.
func (r *Reader) exchangeCmd(cmd *iso7816.CommandAPDU) ([]byte, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("emv: encode %s: %w", cmd.Ins, err)
	}
	r.log.Debug("sending", "cmd", cmd.String(), "raw", tlv.Pretty(raw))
	return r.card.Exchange(raw)
}

// exchangeRetry reissues a command until it succeeds or the configured
// attempts are used up.
func (r *Reader) exchangeRetry(cmd *iso7816.CommandAPDU) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= r.config.Attempts; attempt++ {
		payload, err := r.exchangeCmd(cmd)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		r.log.Debug("exchange failed", "cmd", cmd.Ins.String(), "attempt", attempt, "error", err)
	}
	return nil, fmt.Errorf("emv: %s failed after %d attempts: %w", cmd.Ins, r.config.Attempts, lastErr)
}

func (r *Reader) debugEnabled() bool {
	return r.log.Enabled(context.Background(), slog.LevelDebug)
}

// describeSelection logs a readable rendering of a selection response.
func (r *Reader) describeSelection(payload []byte) {
	if !r.debugEnabled() {
		return
	}
	fci, err := ParseFCI(payload)
	if err != nil {
		r.log.Debug("selection response not parseable", "error", err)
		return
	}
	r.log.Debug("selection response\n" + fci.Describe())
}

// describeRecord logs a readable rendering of a record response.
func (r *Reader) describeRecord(payload []byte) {
	if !r.debugEnabled() {
		return
	}
	record, err := ParseCardRecord(payload)
	if err != nil {
		r.log.Debug("record not parseable", "error", err)
		return
	}
	r.log.Debug("card record\n" + record.Describe())
}

// logTagCensus logs which tags a response carries, without their values.
func (r *Reader) logTagCensus(msg string, payload []byte) {
	if !r.debugEnabled() {
		return
	}
	flat := tlv.Flatten(payload)
	names := make([]string, 0, len(flat))
	for tag := range flat {
		names = append(names, fmt.Sprintf("%X", uint16(tag)))
	}
	sort.Strings(names)
	r.log.Debug(msg, "tags", strings.Join(names, " "))
}
