package atlassian

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DeploymentType identifies whether an Atlassian instance is Cloud or
// Server/Data Center. It is derived from the base URL and never stored.
type DeploymentType string

const (
	DeploymentCloud  DeploymentType = "cloud"
	DeploymentServer DeploymentType = "server"
)

// IsValid reports whether the value is one of the known deployment types.
func (d DeploymentType) IsValid() bool {
	return d == DeploymentCloud || d == DeploymentServer
}

var (
	ipv4PrivatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^127\.`),
		regexp.MustCompile(`^192\.168\.`),
		regexp.MustCompile(`^10\.`),
		regexp.MustCompile(`^172\.(1[6-9]|2[0-9]|3[0-1])\.`),
	}

	localDomainSuffixes = []string{
		".local",
		".localhost",
		".internal",
		".corp",
		".company",
	}

	cloudDomainPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\.atlassian\.net$`),
		regexp.MustCompile(`\.jira\.com$`),
		regexp.MustCompile(`\.jira-dev\.com$`),
		regexp.MustCompile(`^api\.atlassian\.com$`),
	}
)

// IsCloudURL reports whether the URL points at an Atlassian Cloud instance.
// Malformed input is treated as Server/DC: an on-premises install behind a
// custom domain is the safe assumption when classification is uncertain.
func IsCloudURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return false
	}

	if isLocalOrPrivateHost(hostname) {
		return false
	}

	return isCloudHost(hostname)
}

// DetectDeploymentType classifies a base URL as cloud or server.
func DetectDeploymentType(rawURL string) DeploymentType {
	if IsCloudURL(rawURL) {
		return DeploymentCloud
	}
	return DeploymentServer
}

func isLocalOrPrivateHost(hostname string) bool {
	if hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1" {
		return true
	}

	for _, pattern := range ipv4PrivatePatterns {
		if pattern.MatchString(hostname) {
			return true
		}
	}

	for _, suffix := range localDomainSuffixes {
		if strings.HasSuffix(hostname, suffix) {
			return true
		}
	}

	return false
}

func isCloudHost(hostname string) bool {
	for _, pattern := range cloudDomainPatterns {
		if pattern.MatchString(hostname) {
			return true
		}
	}
	return false
}

// URLValidation is the result of checking a base URL.
type URLValidation struct {
	IsValid        bool
	Error          string
	DeploymentType DeploymentType
}

// ValidateURL checks that a base URL is usable for an Atlassian instance:
// http or https scheme and a non-empty hostname.
func ValidateURL(rawURL string) URLValidation {
	if rawURL == "" {
		return URLValidation{IsValid: false, Error: "URL is required"}
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return URLValidation{IsValid: false, Error: fmt.Sprintf("invalid URL format: %v", err)}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return URLValidation{IsValid: false, Error: "URL must use HTTP or HTTPS protocol"}
	}

	if parsed.Hostname() == "" {
		return URLValidation{IsValid: false, Error: "URL must have a valid hostname"}
	}

	return URLValidation{
		IsValid:        true,
		DeploymentType: DetectDeploymentType(rawURL),
	}
}

// NormalizeURL returns the canonical base URL for an Atlassian instance:
// scheme plus host only, no path, no trailing slash. HTTP is upgraded to
// HTTPS for anything that is not a local or private host.
func NormalizeURL(rawURL string) (string, error) {
	validation := ValidateURL(rawURL)
	if !validation.IsValid {
		return "", fmt.Errorf("invalid Atlassian URL: %s", validation.Error)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to normalize URL: %w", err)
	}

	scheme := parsed.Scheme
	if scheme == "http" && !isLocalOrPrivateHost(parsed.Hostname()) {
		scheme = "https"
	}

	return scheme + "://" + parsed.Host, nil
}
