package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LLM --dir ../domain/assistant --output domain/assistant --outpkg assistantmock --filename llm_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRunner --dir ../domain/assistant --output domain/assistant --outpkg assistantmock --filename query_runner_mock.go
