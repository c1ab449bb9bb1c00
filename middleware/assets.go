package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"sync"
)

// Static assets referenced by the layout
const (
	SiteCSSPath  = "static/css/site.css"
	SiteJSPath   = "static/js/site.js"
	FaviconPath  = "static/images/favicon.svg"
	defaultAsset = "1"
)

var (
	cssVersion        string
	jsVersion         string
	faviconVersion    string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		cssVersion = versionOf(SiteCSSPath)
		jsVersion = versionOf(SiteJSPath)
		faviconVersion = versionOf(FaviconPath)
		log.Printf("[INFO] Asset versions initialized: css=%s js=%s favicon=%s", cssVersion, jsVersion, faviconVersion)
	})
}

func versionOf(path string) string {
	if v := computeFileHash(path); v != "" {
		return v
	}
	return defaultAsset
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the stylesheet version hash for cache busting.
// ctx is unused; versions are computed once at startup.
func GetCSSVersion(ctx context.Context) string {
	if cssVersion == "" {
		return defaultAsset
	}
	return cssVersion
}

// GetJSVersion returns the site script version hash
func GetJSVersion(ctx context.Context) string {
	if jsVersion == "" {
		return defaultAsset
	}
	return jsVersion
}

// GetFaviconVersion returns the favicon version hash
func GetFaviconVersion(ctx context.Context) string {
	if faviconVersion == "" {
		return defaultAsset
	}
	return faviconVersion
}
