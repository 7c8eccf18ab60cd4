package atlassian

import "testing"

func TestDetectDeploymentType(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want DeploymentType
	}{
		{"atlassian.net", "https://mycompany.atlassian.net", DeploymentCloud},
		{"jira.com", "https://team.jira.com", DeploymentCloud},
		{"jira-dev.com", "https://team.jira-dev.com", DeploymentCloud},
		{"api gateway", "https://api.atlassian.com", DeploymentCloud},
		{"localhost", "http://localhost:8080", DeploymentServer},
		{"loopback ip", "http://127.0.0.1:8080", DeploymentServer},
		{"ipv6 loopback", "http://[::1]:8080", DeploymentServer},
		{"private class A", "http://10.0.0.5", DeploymentServer},
		{"private class B", "http://172.16.1.1", DeploymentServer},
		{"private class B upper bound", "http://172.31.255.1", DeploymentServer},
		{"public 172 address", "https://172.32.0.1", DeploymentServer},
		{"private class C", "http://192.168.1.100", DeploymentServer},
		{"local suffix", "https://jira.local", DeploymentServer},
		{"internal suffix", "https://jira.mycompany.internal", DeploymentServer},
		{"corp suffix", "https://jira.mycompany.corp", DeploymentServer},
		{"custom domain", "https://jira.mycompany.com", DeploymentServer},
		{"atlassian.net in path only", "https://example.com/mycompany.atlassian.net", DeploymentServer},
		{"empty", "", DeploymentServer},
		{"malformed", "://not-a-url", DeploymentServer},
		{"no hostname", "https://", DeploymentServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDeploymentType(tt.url); got != tt.want {
				t.Errorf("DetectDeploymentType(%q) = %s, want %s", tt.url, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantValid bool
		wantType  DeploymentType
	}{
		{"valid cloud", "https://mycompany.atlassian.net", true, DeploymentCloud},
		{"valid server", "https://jira.mycompany.com", true, DeploymentServer},
		{"http allowed", "http://localhost:8080", true, DeploymentServer},
		{"empty", "", false, ""},
		{"bad scheme", "ftp://jira.mycompany.com", false, ""},
		{"no hostname", "https://", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateURL(tt.url)
			if got.IsValid != tt.wantValid {
				t.Fatalf("ValidateURL(%q).IsValid = %v, want %v (error: %s)", tt.url, got.IsValid, tt.wantValid, got.Error)
			}
			if tt.wantValid && got.DeploymentType != tt.wantType {
				t.Errorf("ValidateURL(%q).DeploymentType = %s, want %s", tt.url, got.DeploymentType, tt.wantType)
			}
			if !tt.wantValid && got.Error == "" {
				t.Errorf("ValidateURL(%q) invalid but no error message", tt.url)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"strips trailing slash", "https://mycompany.atlassian.net/", "https://mycompany.atlassian.net", false},
		{"strips path", "https://mycompany.atlassian.net/wiki/something", "https://mycompany.atlassian.net", false},
		{"upgrades http for public host", "http://jira.mycompany.com", "https://jira.mycompany.com", false},
		{"keeps http for localhost", "http://localhost:8080", "http://localhost:8080", false},
		{"keeps http for private ip", "http://192.168.1.5:8080", "http://192.168.1.5:8080", false},
		{"invalid input", "not a url", "", true},
		{"empty input", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// Classification must be stable under normalization.
func TestDetectDeploymentTypeIdempotentUnderNormalize(t *testing.T) {
	urls := []string{
		"https://mycompany.atlassian.net/",
		"http://jira.mycompany.com/some/path",
		"http://localhost:8080",
		"https://team.jira.com",
	}

	for _, rawURL := range urls {
		normalized, err := NormalizeURL(rawURL)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) failed: %v", rawURL, err)
		}
		if DetectDeploymentType(normalized) != DetectDeploymentType(rawURL) {
			t.Errorf("classification changed under normalization for %q (normalized %q)", rawURL, normalized)
		}
	}
}
