package version

// Version is the nockit release version, overridden at build time via
// -ldflags "-X github.com/nockpoint/nockit/internal/version.Version=v1.2.3".
// Version 是 nockit 发布版本，构建时通过 -ldflags 覆盖。
var Version = "dev"

// Commit is the git commit hash the binary was built from.
// Commit 是构建二进制文件时的 git 提交哈希。
var Commit = "unknown"

// BuildDate is the UTC build timestamp.
// BuildDate 是 UTC 构建时间戳。
var BuildDate = "unknown"
