//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the insurebook project using Mage.
//
// Usage:
//
//	mage build           Compile insurebook binary to bin/
//	mage test            Run all tests (unit + integration)
//	mage testUnit        Run only unit tests (exclude integration)
//	mage testIntegration Run only integration tests (builds first)
//	mage lint            Check gofmt, run go vet and golangci-lint
//	mage fmt             List files that are not gofmt-clean
//	mage vet             Run go vet
//	mage clean           Remove build artifacts
//	mage install         Install insurebook to GOPATH/bin
//	mage stats           Print per-package file and test counts
package main
