package azure

// Method identifies how Terraform authenticates to Azure.
type Method string

const (
	MethodOIDC             Method = "oidc"
	MethodServicePrincipal Method = "service_principal"
	MethodCLI              Method = "cli"
	// MethodNone is reserved for an explicit opt-out; resolution never
	// produces it on its own.
	MethodNone Method = "none"
)

// AuthPlan is the resolved authentication method plus the environment
// variables that must be exported before terraform runs. Constructed fresh
// per run and never persisted.
type AuthPlan struct {
	Method Method
	Env    map[string]string
}

// ResolutionError reports that no authentication method could be resolved, or
// that the selected method failed to produce usable credentials. Credential
// values are never included in the message.
type ResolutionError struct {
	Reason string
}

func (e *ResolutionError) Error() string {
	return "azure auth resolution failed: " + e.Reason
}
