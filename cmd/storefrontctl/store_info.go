package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"storefront/config"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/jsonstore"
	"storefront/internal/util"

	"gocloud.dev/blob"
)

func (c *cli) storeInfo(ctx context.Context, args []string) error {
	if err := parseFlags(c.newFlagSet("store-info"), args); err != nil {
		return err
	}
	if c.cfg.Storage.Driver != config.StorageDriverJSON {
		return errors.Errorf("store-info needs the %s storage driver, configured driver is %s",
			config.StorageDriverJSON, c.cfg.Storage.Driver)
	}

	bucket, err := jsonstore.OpenBucket(ctx, c.cfg.Storage)
	if err != nil {
		return err
	}
	defer func() { _ = bucket.Close() }()

	location := c.cfg.Storage.BucketURL
	if location == "" {
		location = c.cfg.Storage.DataDir
	}
	fmt.Fprintf(c.out, "Store: %s\n\n", location)

	return c.printCollections(ctx, bucket, jsonstore.KeysFromConfig(c.cfg.Storage), time.Now())
}

func (c *cli) printCollections(ctx context.Context, bucket *blob.Bucket, keys jsonstore.Keys, now time.Time) error {
	infos, err := jsonstore.Inspect(ctx, bucket, keys)
	if err != nil {
		return err
	}

	tw := newTable(c.out)
	fmt.Fprintln(tw, "KEY\tRECORDS\tSIZE\tAGE\tSHA256")
	for _, info := range infos {
		if !info.Exists {
			fmt.Fprintf(tw, "%s\tmissing\t-\t-\t-\n", info.Key)

			continue
		}
		records := strconv.Itoa(info.Records)
		if info.Records < 0 {
			records = "malformed"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			info.Key, records, util.FormatBytes(info.Size), util.FormatAge(info.ModTime, now), util.ShortChecksum(info.Checksum))
	}

	return tw.Flush()
}
