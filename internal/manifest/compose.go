package manifest

import (
	"github.com/davit-sh/davit/internal/values"
)

// Compose renders the full manifest set for a release. Any structural
// error aborts the whole render; a partial, inconsistent set is never
// returned.
func Compose(rel values.Release, res *values.Resolver) (*Set, error) {
	pg, err := postgresConfigFrom(rel, res)
	if err != nil {
		return nil, err
	}
	rds, err := redisConfigFrom(rel, res)
	if err != nil {
		return nil, err
	}

	gateway, err := composeGateway(rel, res, pg, rds)
	if err != nil {
		return nil, err
	}
	console, err := composeConsole(rel, res)
	if err != nil {
		return nil, err
	}
	postgres, err := composePostgres(rel, res)
	if err != nil {
		return nil, err
	}
	redis, err := composeRedis(rel, res)
	if err != nil {
		return nil, err
	}

	set := &Set{Groups: []Group{*gateway, *console}}
	if postgres != nil {
		set.Groups = append(set.Groups, *postgres)
	}
	if redis != nil {
		set.Groups = append(set.Groups, *redis)
	}
	return set, nil
}
