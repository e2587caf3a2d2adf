package iceconfig

import (
	"github.com/pion/webrtc/v4"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/config"
)

// Config is the ICE server list handed to browser clients. The backend
// only assembles and forwards these descriptors; it never dials them.
type Config struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}

// Provider serves a static server list: public Google STUN plus an
// optional TURN relay when credentials are configured.
type Provider struct {
	servers []webrtc.ICEServer
}

func NewProvider(cfg config.Settings) *Provider {
	servers := []webrtc.ICEServer{
		{URLs: []string{"stun:stun.l.google.com:19302"}},
		{URLs: []string{"stun:stun1.l.google.com:19302"}},
		{URLs: []string{"stun:stun2.l.google.com:19302"}},
	}
	if cfg.TurnUsername != "" && cfg.TurnCredential != "" {
		servers = append(servers, webrtc.ICEServer{
			URLs:       []string{cfg.TurnServerURL},
			Username:   cfg.TurnUsername,
			Credential: cfg.TurnCredential,
		})
	}
	return &Provider{servers: servers}
}

// ICEConfig returns the descriptor list for the REST surface.
func (p *Provider) ICEConfig() Config {
	out := make([]webrtc.ICEServer, len(p.servers))
	copy(out, p.servers)
	return Config{ICEServers: out}
}
