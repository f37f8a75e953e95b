package timezone

import (
	"sync"
	"time"
)

// Fallback para estabelecimentos sem fuso configurado.
const DefaultTimezone = "America/Sao_Paulo"

var cache sync.Map // tz -> *time.Location

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	return load(tz) != nil
}

// Location resolve o fuso IANA do tenant, caindo no padrão quando o valor
// armazenado é vazio ou inválido.
func Location(tz string) *time.Location {
	if loc := load(tz); loc != nil {
		return loc
	}
	if loc := load(DefaultTimezone); loc != nil {
		return loc
	}
	return time.UTC
}

// NowIn devolve o relógio atual no fuso do tenant.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

func load(tz string) *time.Location {
	if tz == "" {
		return nil
	}
	if v, ok := cache.Load(tz); ok {
		return v.(*time.Location)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	cache.Store(tz, loc)
	return loc
}
