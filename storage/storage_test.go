package storage

import "cdn-short-url/config"

func defaultTestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Region = "us-east-1"
	cfg.Bucket = "b"
	cfg.Prefix = "a"
	cfg.DistributionHost = "shor.ty"
	return cfg
}
