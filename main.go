package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ebfe/scard"
	"github.com/lmittmann/tint"

	"github.com/tapscan/emv-pan/pkg/emv"
	"github.com/tapscan/emv-pan/pkg/iso7816"
	"github.com/tapscan/emv-pan/pkg/pn532"
)

func main() {
	var (
		readerName = flag.String("reader", "", "pick the reader whose name contains this string")
		transport  = flag.String("transport", "pcsc", "card transport: pcsc (direct APDUs) or acr122u (PN532 pseudo-APDU tunnel)")
		listOnly   = flag.Bool("list", false, "list the available readers and exit")
		attempts   = flag.Int("attempts", emv.DefaultConfig.Attempts, "selection and GPO attempts before giving up")
		unmask     = flag.Bool("unmask", false, "print the full PAN instead of a masked one")
		verbose    = flag.Bool("v", false, "debug logging")
		jsonLogs   = flag.Bool("json", false, "JSON logs instead of the console format")
	)
	flag.Parse()

	setupLogging(*verbose, *jsonLogs)

	if *transport != "pcsc" && *transport != "acr122u" {
		slog.Error("unknown transport", "transport", *transport)
		os.Exit(2)
	}

	if *listOnly {
		if err := listReaders(); err != nil {
			slog.Error("no reader listing", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, card, err := connectToCard(*readerName)
	if err != nil {
		slog.Error("no card connection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := card.Disconnect(scard.LeaveCard); err != nil {
			slog.Warn("card disconnect failed", "error", err)
		}
		releaseContext(ctx)
	}()

	var (
		exchanger emv.Exchanger
		uid       pn532.UID
	)
	if *transport == "acr122u" {
		link := &acr122u{card: card}
		uid, err = pn532.DetectTarget(link)
		switch {
		case errors.Is(err, pn532.ErrNotISODEP):
			// Not a payment card. Report the detection and stop.
			slog.Info("target detected", "uid", uid)
			fmt.Println(pn532.NewTag(uid, pn532.ForumType2, nil))
			return
		case err != nil:
			slog.Error("no target in field", "error", err)
			os.Exit(1)
		}
		slog.Info("target detected", "uid", uid)
		exchanger = pn532.NewChannel(link)
	} else {
		exchanger = &pcscCard{card: card}
		if u, err := readUID(card); err == nil {
			uid = u
			slog.Info("target detected", "uid", uid)
		}
	}

	digits, err := emv.NewReader(exchanger, emv.Config{Attempts: *attempts}).ReadPAN()
	if err != nil {
		slog.Error("card reading failed", "error", err)
		fmt.Println(pn532.NewTag(uid, pn532.ForumType2, nil))
		return
	}

	if *unmask {
		fmt.Println(digits)
	} else {
		fmt.Println(digits.Masked())
	}
}

func setupLogging(verbose, jsonLogs bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	slog.SetDefault(slog.New(handler))
}

// connectToCard handles the PC/SC context establishment and reader connection.
func connectToCard(name string) (*scard.Context, *scard.Card, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, nil, fmt.Errorf("establish context: %w", err)
	}

	reader, err := findReader(ctx, name)
	if err != nil {
		releaseContext(ctx)
		return nil, nil, err
	}
	slog.Info("using reader", "name", reader)

	// ProtocolAny covers T=0 and T=1; contactless front ends expose either.
	card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolAny)
	if err != nil {
		releaseContext(ctx)
		return nil, nil, fmt.Errorf("connect to card: %w", err)
	}

	return ctx, card, nil
}

func listReaders() error {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return fmt.Errorf("establish context: %w", err)
	}
	defer releaseContext(ctx)

	readers, err := ctx.ListReaders()
	if err != nil {
		return fmt.Errorf("list readers: %w", err)
	}
	if len(readers) == 0 {
		return errors.New("no smart card reader found")
	}
	for _, r := range readers {
		fmt.Println(r)
	}
	return nil
}

func findReader(ctx *scard.Context, name string) (string, error) {
	readers, err := ctx.ListReaders()
	if err != nil {
		return "", fmt.Errorf("list readers: %w", err)
	}
	if len(readers) == 0 {
		return "", errors.New("no smart card reader found")
	}
	if name == "" {
		return readers[0], nil
	}
	for _, r := range readers {
		if strings.Contains(strings.ToLower(r), strings.ToLower(name)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("no reader matching %q", name)
}

func releaseContext(ctx *scard.Context) {
	if err := ctx.Release(); err != nil {
		slog.Warn("context release failed", "error", err)
	}
}

// pcscCard sends APDUs straight through PC/SC, for readers whose firmware
// already speaks ISO-DEP to the contactless card.
type pcscCard struct {
	card *scard.Card
}

func (p *pcscCard) Exchange(apdu []byte) ([]byte, error) {
	raw, err := p.card.Transmit(apdu)
	if err != nil {
		return nil, fmt.Errorf("transmit: %w", err)
	}
	resp, err := iso7816.ParseResponseAPDU(raw)
	if err != nil {
		return nil, err
	}
	if !resp.Status.IsSuccess() {
		return nil, fmt.Errorf("card answered %s", resp.Status)
	}
	return resp.Data, nil
}

// readUID asks the reader for the card identifier with the PC/SC pseudo
// APDU for contactless cards.
func readUID(card *scard.Card) (pn532.UID, error) {
	raw, err := iso7816.GetUID().Bytes()
	if err != nil {
		return pn532.UID{}, err
	}
	resp, err := card.Transmit(raw)
	if err != nil {
		return pn532.UID{}, err
	}
	parsed, err := iso7816.ParseResponseAPDU(resp)
	if err != nil {
		return pn532.UID{}, err
	}
	if !parsed.Status.IsSuccess() {
		return pn532.UID{}, fmt.Errorf("reader answered %s", parsed.Status)
	}
	return pn532.NewUID(parsed.Data), nil
}

// acr122u reaches the PN532 inside an ACR122U through the reader's pseudo
// APDU tunnel: class FF wraps a raw host frame and the device's answer
// comes back within the same transmit exchange.
type acr122u struct {
	card    *scard.Card
	resp    []byte
	pending bool
}

func (a *acr122u) WriteCommand(cmd []byte) error {
	frame := make([]byte, 0, len(cmd)+6)
	frame = append(frame, iso7816.CLA_PSEUDO, 0x00, 0x00, 0x00, byte(len(cmd)+1), pn532.TFIHostToDevice)
	frame = append(frame, cmd...)

	resp, err := a.card.Transmit(frame)
	if err != nil {
		return fmt.Errorf("transmit: %w", err)
	}
	a.resp = resp
	a.pending = true
	return nil
}

func (a *acr122u) ReadResponse(expect byte) ([]byte, error) {
	if !a.pending {
		return nil, errors.New("acr122u: no response pending")
	}
	a.pending = false

	parsed, err := iso7816.ParseResponseAPDU(a.resp)
	if err != nil {
		return nil, err
	}
	if !parsed.Status.IsSuccess() {
		return nil, fmt.Errorf("acr122u: tunnel answered %s", parsed.Status)
	}

	body := parsed.Data
	if len(body) < 2 || body[0] != pn532.TFIDeviceToHost || body[1] != expect+1 {
		return nil, fmt.Errorf("acr122u: unexpected frame % X", body)
	}
	return body[2:], nil
}
