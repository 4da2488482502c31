package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// tokenExchangeAudience is the audience the CI runner mints ID tokens for
// when the target is an Azure AD federated credential.
const tokenExchangeAudience = "api://AzureADTokenExchange"

// armScope is the management-plane scope used for the credential preflight.
const armScope = "https://management.azure.com/.default"

// TokenSource fetches the CI runner's OIDC ID token.
type TokenSource interface {
	IDToken(ctx context.Context) (string, error)
}

// TokenExchanger trades an ID token for an Azure AD access token. The real
// implementation goes through azidentity; tests substitute a stub.
type TokenExchanger interface {
	Exchange(ctx context.Context, tenantID, clientID, idToken string) error
}

// actionsTokenSource reads the GitHub Actions ID token endpoint advertised
// via ACTIONS_ID_TOKEN_REQUEST_URL and ACTIONS_ID_TOKEN_REQUEST_TOKEN.
type actionsTokenSource struct {
	client *http.Client
}

// NewActionsTokenSource returns the CI-backed token source.
func NewActionsTokenSource() TokenSource {
	return &actionsTokenSource{client: &http.Client{Timeout: 30 * time.Second}}
}

func (s *actionsTokenSource) IDToken(ctx context.Context) (string, error) {
	requestURL := os.Getenv("ACTIONS_ID_TOKEN_REQUEST_URL")
	requestToken := os.Getenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN")
	if requestURL == "" || requestToken == "" {
		return "", fmt.Errorf("OIDC token endpoint is not available in this environment")
	}

	separator := "?"
	if strings.Contains(requestURL, "?") {
		separator = "&"
	}
	endpoint := requestURL + separator + "audience=" + url.QueryEscape(tokenExchangeAudience)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build OIDC token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+requestToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request OIDC token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OIDC token request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OIDC token response: %w", err)
	}

	var payload struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode OIDC token response: %w", err)
	}
	if payload.Value == "" {
		return "", fmt.Errorf("OIDC token response contained no token")
	}
	return payload.Value, nil
}

// azidentityExchanger confirms the federated credential is valid by
// requesting a management-plane token before terraform runs.
type azidentityExchanger struct{}

// NewTokenExchanger returns the azidentity-backed exchanger.
func NewTokenExchanger() TokenExchanger {
	return &azidentityExchanger{}
}

func (azidentityExchanger) Exchange(ctx context.Context, tenantID, clientID, idToken string) error {
	cred, err := azidentity.NewClientAssertionCredential(tenantID, clientID,
		func(context.Context) (string, error) { return idToken, nil }, nil)
	if err != nil {
		return fmt.Errorf("failed to build client assertion credential: %w", err)
	}
	if _, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{armScope}}); err != nil {
		return fmt.Errorf("token exchange with Azure AD failed: %w", err)
	}
	return nil
}
