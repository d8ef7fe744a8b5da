package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"facturador/internal/contingency"
	"facturador/internal/mh"
	"facturador/internal/platform/config"
	"facturador/internal/session"
	"facturador/internal/sign"
)

// runReplayLoop authenticates with the configured issuer credentials, loads
// the signing certificate, and periodically replays the contingency queue.
// The MH session is renewed when its token expires.
func runReplayLoop(ctx context.Context, cfg config.Config, log *log.Logger,
	client *mh.Client, engine *sign.Engine, sessions *session.Manager,
	processor *contingency.Processor) error {

	p12, err := os.ReadFile(cfg.CertPath)
	if err != nil {
		return fmt.Errorf("reading certificate: %w", err)
	}
	cert, err := engine.LoadCertificate(p12, cfg.CertPassword)
	if err != nil {
		return fmt.Errorf("loading certificate: %w", err)
	}

	token, err := client.Authenticate(ctx, cfg.NIT, cfg.Password)
	if err != nil {
		return fmt.Errorf("authenticating with MH: %w", err)
	}
	id := sessions.Create(token, cert)

	ticker := time.NewTicker(cfg.ReplayInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			sessions.Destroy(id)
			return nil
		case <-ticker.C:
		}

		snap, err := sessions.Get(id)
		if err != nil {
			// Token ran out; renew and rebuild the session.
			token, authErr := client.Authenticate(ctx, cfg.NIT, cfg.Password)
			if authErr != nil {
				log.Printf("replay: re-authentication failed: %v", authErr)
				continue
			}
			cert, loadErr := engine.LoadCertificate(p12, cfg.CertPassword)
			if loadErr != nil {
				return fmt.Errorf("reloading certificate: %w", loadErr)
			}
			id = sessions.Create(token, cert)
			snap, err = sessions.Get(id)
			if err != nil {
				return err
			}
		}

		result, err := processor.ProcessBatch(ctx, snap.Token, snap.Certificate, cfg.ReplayBatchSize)
		if err != nil {
			log.Printf("replay pass failed: %v", err)
			continue
		}
		if result.Processed > 0 {
			log.Printf("replay pass: processed=%d completed=%d requeued=%d failed=%d",
				result.Processed, result.Completed, result.Requeued, result.Failed)
		}
	}
}
