package atlassian

// Config holds the resolved connection settings for one Atlassian instance.
// It is assembled once at startup (or injected per request) and treated as
// immutable afterwards.
//
// For cloud deployments Email and APIToken are both required. For Server/DC
// the APIToken is either a PAT (Email empty) or a password paired with a
// username carried in Email.
type Config struct {
	BaseURL        string
	DeploymentType DeploymentType
	Email          string
	APIToken       string
}
