package security

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/util"
)

// ExternalIdentity : проверенная личность внешнего провайдера
type ExternalIdentity struct {
	ID    string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserinfoVerifier : проверяет bearer-токен провайдера через userinfo endpoint
type UserinfoVerifier struct {
	client *http.Client
	url    string
}

func NewUserinfoVerifier(cfg *config.OAuthConfig) *UserinfoVerifier {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &UserinfoVerifier{
		client: &http.Client{Timeout: timeout},
		url:    cfg.UserinfoURL,
	}
}

func (v *UserinfoVerifier) Verify(ctx context.Context, bearerToken string) (*ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return nil, util.LogError("[OAuth] ошибка создания запроса", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, util.LogError("[OAuth] ошибка запроса userinfo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[OAuth] провайдер отклонил токен: статус %d", resp.StatusCode)
	}

	var identity ExternalIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, util.LogError("[OAuth] ошибка декодирования userinfo", err)
	}

	if identity.ID == "" {
		return nil, fmt.Errorf("[OAuth] userinfo не содержит идентификатора")
	}

	return &identity, nil
}
