package main

import (
	"flag"

	"SkiBuddy/internal/repository"
	"SkiBuddy/pkg/logger"
)

func main() {
	out := flag.String("out", "./internal/repository/query", "gorm/gen 代码输出目录")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	repository.RunGenerate(*out)
}
