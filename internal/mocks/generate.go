package mocks

//go:generate mockery --name JournalStore --srcpkg github.com/kasunkula/middys-assignment/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
