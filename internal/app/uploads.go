package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mvalencia464/onboard/internal/adapters/observability"
	"github.com/mvalencia464/onboard/internal/domain"
)

// uploadBatchSize bounds concurrent uploads so bulk asset pushes don't
// overwhelm the transport.
const uploadBatchSize = 3

type Asset struct {
	Name    string
	Content []byte
}

type UploadSummary struct {
	Uploaded []string `json:"uploaded"`
	Failed   []string `json:"failed"`
}

type Uploader struct {
	store domain.FileStore
}

func NewUploader(store domain.FileStore) *Uploader {
	return &Uploader{store: store}
}

// UploadAll pushes assets in batches of three concurrent uploads, batches
// strictly sequential. A failed file is logged and listed in the summary;
// its batch siblings are unaffected.
func (u *Uploader) UploadAll(ctx context.Context, assets []Asset) UploadSummary {
	urls := make([]string, len(assets))
	errs := make([]error, len(assets))

	for start := 0; start < len(assets); start += uploadBatchSize {
		end := start + uploadBatchSize
		if end > len(assets) {
			end = len(assets)
		}
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				url, err := u.store.Upload(ctx, assets[i].Name, assets[i].Content)
				observability.ObserveUpload(err)
				if err != nil {
					log.Warn().Str("file", assets[i].Name).Err(err).Msg("asset upload failed")
					errs[i] = err
					return
				}
				urls[i] = url
			}(i)
		}
		wg.Wait()
	}

	sum := UploadSummary{Uploaded: []string{}, Failed: []string{}}
	for i := range assets {
		if errs[i] != nil {
			sum.Failed = append(sum.Failed, assets[i].Name)
			continue
		}
		sum.Uploaded = append(sum.Uploaded, urls[i])
	}
	return sum
}
