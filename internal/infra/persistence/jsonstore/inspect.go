package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"storefront/internal/errors"
	"storefront/internal/util"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// CollectionInfo summarises one stored collection.
type CollectionInfo struct {
	Key      string
	Exists   bool
	Size     int64
	ModTime  time.Time
	Records  int // -1 when the content is not a JSON array
	Checksum string
}

// Inspect reports size, age, record count and checksum of every collection.
func Inspect(ctx context.Context, bucket *blob.Bucket, keys Keys) ([]CollectionInfo, error) {
	infos := make([]CollectionInfo, 0, 3)
	for _, key := range []string{keys.Users, keys.Products, keys.Orders} {
		info := CollectionInfo{Key: key}

		attrs, err := bucket.Attributes(ctx, key)
		if gcerrors.Code(err) == gcerrors.NotFound {
			infos = append(infos, info)

			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %s", key)
		}
		info.Exists = true
		info.Size = attrs.Size
		info.ModTime = attrs.ModTime

		data, err := bucket.ReadAll(ctx, key)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		if info.Checksum, err = util.Checksum(bytes.NewReader(data)); err != nil {
			return nil, err
		}

		var records []json.RawMessage
		info.Records = -1
		if json.Unmarshal(data, &records) == nil {
			info.Records = len(records)
		}

		infos = append(infos, info)
	}

	return infos, nil
}
