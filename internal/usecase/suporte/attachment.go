package suporte

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pedroriq/sissuporte/internal/monitoring"
	"github.com/pedroriq/sissuporte/internal/storage"
)

// resolvePrintURL decide a URL do print gravada junto do chamado.
// Uma print_url explícita vence; um print_base64 é subido na hora; a
// falha do upload é registrada e engolida: o chamado é salvo sem
// imagem. Chamada bloqueante, sem retry.
func resolvePrintURL(
	ctx context.Context,
	uploader storage.Uploader,
	log zerolog.Logger,
	printURL string,
	printBase64 string,
) *string {

	if printURL != "" {
		return &printURL
	}

	if printBase64 == "" || uploader == nil {
		return nil
	}

	// payload vem como data URL; o que importa é o que segue a vírgula
	raw := printBase64
	if i := strings.LastIndex(raw, ","); i >= 0 {
		raw = raw[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		log.Warn().Err(err).Msg("print payload is not valid base64, saving ticket without image")
		monitoring.StorageUploads.WithLabelValues("invalid").Inc()
		return nil
	}

	key := storage.PrintKey(time.Now())
	url, err := uploader.Upload(ctx, key, data, "image/png")
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("print upload failed, saving ticket without image")
		monitoring.StorageUploads.WithLabelValues("error").Inc()
		return nil
	}

	monitoring.StorageUploads.WithLabelValues("ok").Inc()
	return &url
}
