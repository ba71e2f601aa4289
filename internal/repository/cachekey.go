package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/panacus-go/pkg/model"
)

// CacheKey builds the lookup key CacheRepository stores an AnalysisJob's
// result under: the digest of the job's (decompressed) GFA bytes plus a
// canonical string of every parameter that changes the result for the
// same graph - count type, coverage/quorum spec, grouping, and the
// digests of any subset/exclude files. Two jobs over the same graph with
// the same parameters collide on purpose; anything else must not.
func CacheKey(job *model.AnalysisJob, gfaDigest string) (string, error) {
	subsetDigest, err := digestFileIfSet(job.Subset)
	if err != nil {
		return "", err
	}
	excludeDigest, err := digestFileIfSet(job.Exclude)
	if err != nil {
		return "", err
	}
	groupDigest, err := digestFileIfSet(job.GroupFile)
	if err != nil {
		return "", err
	}
	orderDigest, err := digestFileIfSet(job.Order)
	if err != nil {
		return "", err
	}

	canonical := fmt.Sprintf("mode=%s|count=%s|coverage=%s|quorum=%s|groupby=%s|group=%s|subset=%s|exclude=%s|order=%s",
		job.Mode, job.Count, job.Coverage, job.Quorum, job.GroupBy,
		groupDigest, subsetDigest, excludeDigest, orderDigest)

	h := sha256.Sum256([]byte(gfaDigest + "|" + canonical))
	return hex.EncodeToString(h[:]), nil
}

func digestFileIfSet(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("digesting %s for cache key: %w", path, err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}
