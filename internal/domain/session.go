package domain

// Session representa la sesión autenticada del cliente.
type Session struct {
	User            User   `json:"user"`
	Token           string `json:"-"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// TokenPreview devuelve un prefijo del token apto para logs.
func (s Session) TokenPreview() string {
	return TokenPreview(s.Token)
}

// TokenPreview recorta un token a sus primeros 20 caracteres.
func TokenPreview(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:20] + "..."
}
