package security

import (
	"context"
	"log"
	"net/http"
	"strings"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/repository"
)

// InvitationTokenHeader : заголовок с коммерческим токеном делегирования
const InvitationTokenHeader = "X-Invitation-Token"

// AuthResolver : разрешает принципала запроса по трём независимым каналам
// в фиксированном порядке:
//  1. bearer-токен внешнего OAuth-провайдера (upsert по external_id);
//  2. локальный JWT из cookie;
//  3. коммерческий токен делегирования из заголовка — принципалом
//     становится создатель приглашения (acts-as).
//
// Неудача канала не является ошибкой: резолвер переходит к следующему.
// Если все три канала не дали принципала, запрос анонимный и ему доступны
// только публичные операции
type AuthResolver struct {
	verifier    *UserinfoVerifier
	users       *repository.UserRepository
	invitations *repository.InvitationRepository
	jwtService  *JWTService
	db          *config.Database
	oauthCfg    *config.OAuthConfig
}

func NewAuthResolver(
	verifier *UserinfoVerifier,
	users *repository.UserRepository,
	invitations *repository.InvitationRepository,
	jwtService *JWTService,
	db *config.Database,
	oauthCfg *config.OAuthConfig,
) *AuthResolver {
	return &AuthResolver{
		verifier:    verifier,
		users:       users,
		invitations: invitations,
		jwtService:  jwtService,
		db:          db,
		oauthCfg:    oauthCfg,
	}
}

// Middleware : всегда выполняет разрешение принципала; найденные claims
// кладутся в контекст запроса. Анонимный запрос проходит дальше без claims
func (resolver *AuthResolver) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := resolver.resolve(r)
			if claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth : защищённые операции требуют принципала
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetClaimsFromContext(r.Context()); err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin : операции административного контура
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetClaimsFromContext(r.Context())
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != model.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (resolver *AuthResolver) resolve(r *http.Request) *Claims {
	ctx := r.Context()

	if claims := resolver.resolveOAuth(ctx, r); claims != nil {
		return claims
	}
	if claims := resolver.resolveCookie(ctx, r); claims != nil {
		return claims
	}
	return resolver.resolveInvitation(ctx, r)
}

// resolveOAuth : канал 1 — bearer-токен провайдера.
// Побочный эффект: upsert пользователя по external_id и обновление lastSignedIn
func (resolver *AuthResolver) resolveOAuth(ctx context.Context, r *http.Request) *Claims {
	authorizationHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return nil
	}
	token := strings.TrimPrefix(authorizationHeader, "Bearer ")

	identity, err := resolver.verifier.Verify(ctx, token)
	if err != nil {
		// невалидный внешний токен — не ошибка, пробуем следующий канал
		return nil
	}

	role := model.RoleUser
	if identity.ID == resolver.oauthCfg.OwnerExternalID ||
		(identity.Email != "" && identity.Email == resolver.oauthCfg.OwnerEmail) {
		role = model.RoleAdmin
	}

	user, err := resolver.users.UpsertByExternalID(ctx, resolver.db, identity.ID, identity.Email, role)
	if err != nil {
		log.Printf("[AuthResolver] ошибка upsert пользователя: %v", err)
		return nil
	}

	return claimsFromUser(user)
}

// resolveCookie : канал 2 — локальный JWT.
// Любая ошибка проверки (подпись, срок, формат) означает «нет credential»
func (resolver *AuthResolver) resolveCookie(ctx context.Context, r *http.Request) *Claims {
	cookie, err := r.Cookie(resolver.jwtService.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims, err := resolver.jwtService.ValidateJWT(cookie.Value, []byte(resolver.jwtService.SecretKey))
	if err != nil {
		return nil
	}

	user, err := resolver.users.FindByUUID(ctx, resolver.db, claims.UserUUID)
	if err != nil {
		return nil
	}

	return claimsFromUser(user)
}

// resolveInvitation : канал 3 — коммерческий токен.
// Принципалом становится создатель приглашения; делегирование помечается
// явно (Delegated + InvitationUUID), чтобы в логах отличать владельца от
// делегата, хотя авторизация им даётся одинаковая
func (resolver *AuthResolver) resolveInvitation(ctx context.Context, r *http.Request) *Claims {
	token := r.Header.Get(InvitationTokenHeader)
	if token == "" {
		return nil
	}

	invitation, err := resolver.invitations.FindByToken(ctx, resolver.db, token)
	if err != nil || invitation.RevokedAt != nil {
		return nil
	}

	creator, err := resolver.users.FindByUUID(ctx, resolver.db, invitation.CreatorUUID)
	if err != nil {
		return nil
	}

	claims := claimsFromUser(creator)
	claims.Delegated = true
	claims.InvitationUUID = invitation.UUID

	log.Printf("[AuthResolver] запрос делегирован: приглашение %s действует от имени %s",
		invitation.UUID, creator.UUID)

	return claims
}

func claimsFromUser(user *model.User) *Claims {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &Claims{
		UserUUID: user.UUID,
		Email:    email,
		Role:     user.Role,
	}
}
