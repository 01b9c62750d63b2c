package app

import (
	"github.com/five82/cliprename/internal/config"
	"github.com/five82/cliprename/internal/credentials"
	"github.com/five82/cliprename/internal/twitch"
)

// Session carries the values resolved once per run through the pipeline.
type Session struct {
	Config      config.Config
	Credentials credentials.Credentials
	Token       twitch.AccessToken
}

func (s *Session) credentialStore() credentials.Store {
	return credentials.Store{
		Dir:        s.Config.CredentialsDir,
		IDFile:     s.Config.ClientIDFile,
		SecretFile: s.Config.ClientSecretFile,
	}
}
