package azure

import (
	"context"
	"fmt"
	"os"

	"github.com/Action-Foundry/AVM-Action/config"
)

// Resolver picks exactly one authentication method per run.
type Resolver struct {
	tokens    TokenSource
	exchanger TokenExchanger
	lookupEnv func(string) string
}

// NewResolver returns a Resolver backed by the CI token endpoint and
// azidentity.
func NewResolver() *Resolver {
	return &Resolver{
		tokens:    NewActionsTokenSource(),
		exchanger: NewTokenExchanger(),
		lookupEnv: os.Getenv,
	}
}

// rule is one guarded step of the precedence order. match returning false
// falls through to the next rule; plan runs only for the first match and its
// failure is terminal, never a fallthrough.
type rule struct {
	name  string
	match func(*Resolver, config.AzureConfig) bool
	plan  func(*Resolver, context.Context, config.AzureConfig) (*AuthPlan, error)
}

// precedence is evaluated top to bottom. Keeping it as data makes the order
// itself testable.
var precedence = []rule{
	{
		name: "oidc",
		match: func(r *Resolver, cfg config.AzureConfig) bool {
			return cfg.Complete() && r.lookupEnv("ACTIONS_ID_TOKEN_REQUEST_TOKEN") != ""
		},
		plan: (*Resolver).resolveOIDC,
	},
	{
		name: "service_principal",
		match: func(r *Resolver, cfg config.AzureConfig) bool {
			return cfg.ClientID != "" && cfg.TenantID != ""
		},
		plan: (*Resolver).resolveServicePrincipal,
	},
	{
		name: "cli",
		match: func(r *Resolver, cfg config.AzureConfig) bool {
			return cfg.Empty()
		},
		plan: (*Resolver).resolveCLI,
	},
}

// Resolve evaluates the precedence rules and returns the plan of the first
// matching one. Partial credentials match no rule and are an error rather
// than a silent downgrade to CLI auth.
func (r *Resolver) Resolve(ctx context.Context, cfg config.AzureConfig) (*AuthPlan, error) {
	for _, step := range precedence {
		if step.match(r, cfg) {
			return step.plan(r, ctx, cfg)
		}
	}
	return nil, &ResolutionError{
		Reason: "incomplete Azure credentials: azure_client_id and azure_tenant_id must be provided together",
	}
}

func (r *Resolver) resolveOIDC(ctx context.Context, cfg config.AzureConfig) (*AuthPlan, error) {
	idToken, err := r.tokens.IDToken(ctx)
	if err != nil {
		return nil, &ResolutionError{Reason: fmt.Sprintf("OIDC token fetch failed: %v", err)}
	}
	if err := r.exchanger.Exchange(ctx, cfg.TenantID, cfg.ClientID, idToken); err != nil {
		return nil, &ResolutionError{Reason: fmt.Sprintf("OIDC credential preflight failed: %v", err)}
	}

	return &AuthPlan{
		Method: MethodOIDC,
		Env: map[string]string{
			"ARM_CLIENT_ID":       cfg.ClientID,
			"ARM_TENANT_ID":       cfg.TenantID,
			"ARM_SUBSCRIPTION_ID": cfg.SubscriptionID,
			"ARM_USE_OIDC":        "true",
			"ARM_OIDC_TOKEN":      idToken,
		},
	}, nil
}

func (r *Resolver) resolveServicePrincipal(_ context.Context, cfg config.AzureConfig) (*AuthPlan, error) {
	env := map[string]string{
		"ARM_CLIENT_ID": cfg.ClientID,
		"ARM_TENANT_ID": cfg.TenantID,
	}
	if cfg.SubscriptionID != "" {
		env["ARM_SUBSCRIPTION_ID"] = cfg.SubscriptionID
	}
	if secret := r.clientSecret(); secret != "" {
		env["ARM_CLIENT_SECRET"] = secret
	}
	return &AuthPlan{Method: MethodServicePrincipal, Env: env}, nil
}

// resolveCLI relies on an already-authenticated Azure CLI session; nothing is
// exported.
func (r *Resolver) resolveCLI(context.Context, config.AzureConfig) (*AuthPlan, error) {
	return &AuthPlan{Method: MethodCLI, Env: map[string]string{}}, nil
}

func (r *Resolver) clientSecret() string {
	if secret := r.lookupEnv("AZURE_CLIENT_SECRET"); secret != "" {
		return secret
	}
	return r.lookupEnv("ARM_CLIENT_SECRET")
}
