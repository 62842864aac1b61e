package client

import (
	"net"
	"strings"
)

// Startup shows a one-time banner, then immediately opens the
// ServerAddress prompt. No handler file for this exact split survives in
// original_source (only the flatter predecessor generations, which fold
// Startup and ServerAddress together); this is a direct, minimal
// extrapolation of spec.md §4.6's "Startup ... Outgoing: ServerAddress
// prompt" row (see DESIGN.md).
type Startup struct {
	bannerShown bool
}

func (*Startup) phaseName() string { return "Startup" }

func (st *Startup) handle(s *Session) Phase {
	if !st.bannerShown {
		s.ui.ShowMessage("mazenet client starting.")
		st.bannerShown = true
		return nil
	}
	return &ServerAddress{}
}

// ServerAddress records the server to connect to, per spec.md §4.6.
// Grounded on original_source/client/src/lobby/state_handlers/server_address.rs.
type ServerAddress struct {
	promptPrinted bool
}

func (*ServerAddress) phaseName() string { return "ServerAddress" }

// DefaultServerAddr is the fallback used on blank input, standing in for
// the original's assets/server.yaml-backed default (spec.md §6's embedded
// default-address file). It's a package variable rather than a config
// field threaded through NewSession so this package stays free of a
// config-loading dependency; cmd/client overwrites it at startup once it
// has loaded assets/server.yaml.
var DefaultServerAddr = "127.0.0.1:7777"

func (sa *ServerAddress) handle(s *Session) Phase {
	if key, ok, _ := s.ui.PollSingleKey(); ok && key == "Tab" {
		s.ServerAddr = "127.0.0.1:7777"
		return &PasscodeEntry{}
	}

	if line, ok, _ := s.ui.PollInput(); ok {
		addr, err := parseServerAddress(line)
		if err != nil {
			s.ui.ShowError(err.Error())
			s.ui.ShowPrompt(serverAddressPrompt())
			sa.promptPrinted = true
			return nil
		}
		s.ServerAddr = addr
		return &PasscodeEntry{}
	}

	if !sa.promptPrinted {
		s.ui.ShowPrompt(serverAddressPrompt())
		sa.promptPrinted = true
	}
	return nil
}

func serverAddressPrompt() string {
	return "Press Enter to connect to the default server,\n  Tab for localhost,\n  or choose another server (ip[:port]): "
}

func parseServerAddress(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return DefaultServerAddr, nil
	}

	if _, _, err := net.SplitHostPort(trimmed); err == nil {
		return trimmed, nil
	}

	if ip := net.ParseIP(trimmed); ip != nil {
		_, port, _ := net.SplitHostPort(DefaultServerAddr)
		return net.JoinHostPort(trimmed, port), nil
	}

	return "", &addressError{input: trimmed}
}

type addressError struct{ input string }

func (e *addressError) Error() string {
	return "Invalid address. Press Enter, or Tab, or choose an IP like 192.168.0.10:5000."
}
