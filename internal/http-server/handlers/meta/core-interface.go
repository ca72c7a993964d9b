package meta

import "netivim/impl/core"

type Core interface {
	Status() core.Status
	Types() core.TypesInfo
}
