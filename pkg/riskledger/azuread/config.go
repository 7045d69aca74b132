package azuread

import "os"

// Config holds the Azure AD application registration settings
type Config struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	RedirectURI  string
}

// ConfigFromEnv reads the Azure AD configuration from environment variables.
// TenantID defaults to "common" (multi-tenant) as in the Microsoft identity
// platform docs.
func ConfigFromEnv() Config {
	tenant := os.Getenv("AZURE_TENANT_ID")
	if tenant == "" {
		tenant = "common"
	}
	return Config{
		ClientID:     os.Getenv("AZURE_CLIENT_ID"),
		ClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
		TenantID:     tenant,
		RedirectURI:  os.Getenv("AZURE_REDIRECT_URI"),
	}
}

// Enabled reports whether enough configuration is present to attempt the
// authorization-code flow
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.RedirectURI != ""
}

// Issuer returns the Microsoft identity platform issuer URL for the tenant
func (c Config) Issuer() string {
	return "https://login.microsoftonline.com/" + c.TenantID + "/v2.0"
}
