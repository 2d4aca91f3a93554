//go:build tools
// +build tools

package tools

import (
	_ "github.com/google/wire/cmd/wire"
	_ "go.uber.org/mock/gomock"
	_ "go.uber.org/mock/mockgen"
)
