package zone

import (
	"fmt"
	"strings"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

// Validate checks a raw zone document against the schema rules and returns a
// ValidationResult with every applicable error and warning accumulated. The
// filename must be the bare file name (used for the zone_name agreement
// rule). globalTunnels is overlaid by the document's own tunnel entries
// before record validation.
func Validate(raw map[string]any, filename string, globalTunnels map[string]domain.Tunnel) domain.ValidationResult {
	v := &fileValidator{}
	zone := v.run(raw, filename, globalTunnels)

	res := domain.ValidationResult{File: filename, Errors: v.errs, Warnings: v.warns}
	if res.OK() {
		res.Zone = zone
	}
	return res
}

type fileValidator struct {
	errs  []domain.ValidationError
	warns []domain.ValidationWarning
}

func (v *fileValidator) errorf(field, format string, args ...any) {
	v.errs = append(v.errs, domain.ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)})
}

func (v *fileValidator) referrorf(field, format string, args ...any) {
	v.errs = append(v.errs, domain.ValidationError{Field: field, Msg: fmt.Sprintf(format, args...), Referential: true})
}

func (v *fileValidator) warnf(field, format string, args ...any) {
	v.warns = append(v.warns, domain.ValidationWarning{Field: field, Msg: fmt.Sprintf(format, args...)})
}

func (v *fileValidator) run(raw map[string]any, filename string, global map[string]domain.Tunnel) *domain.ZoneDefinition {
	zoneName := v.zoneName(raw, filename)
	providers := v.providers(raw)
	nameservers := v.nameservers(raw)
	tunnels := v.tunnels(raw, providers, global)
	records := v.records(raw, zoneName, providers, tunnels)

	if zoneName == "" {
		return nil
	}
	return &domain.ZoneDefinition{
		Name:        zoneName,
		Providers:   providers,
		Nameservers: nameservers,
		Tunnels:     tunnels,
		Records:     records,
	}
}

func (v *fileValidator) zoneName(raw map[string]any, filename string) string {
	nameRaw, ok := raw["zone_name"]
	if !ok {
		v.errorf("zone_name", "required field is missing")
		return ""
	}
	name, ok := nameRaw.(string)
	if !ok || strings.TrimSpace(name) == "" {
		v.errorf("zone_name", "must be a non-empty string")
		return ""
	}
	if expected := name + ".yml"; filename != expected {
		v.errorf("zone_name", "filename %q does not match zone_name %q (expected %q)", filename, name, expected)
	}
	return name
}

func (v *fileValidator) providers(raw map[string]any) []domain.Provider {
	singleRaw, hasSingle := raw["provider"]
	listRaw, hasList := raw["providers"]

	switch {
	case hasSingle && hasList:
		v.errorf("provider", "provider and providers cannot both be specified")
		return nil
	case !hasSingle && !hasList:
		v.errorf("provider", "exactly one of provider or providers is required")
		return nil
	}

	if hasSingle {
		s, ok := singleRaw.(string)
		if !ok {
			v.errorf("provider", "must be a string")
			return nil
		}
		p, ok := domain.ParseProvider(s)
		if !ok {
			v.errorf("provider", "unsupported provider %q (supported: cloudflare, route53)", s)
			return nil
		}
		return []domain.Provider{p}
	}

	items, ok := listRaw.([]any)
	if !ok {
		v.errorf("providers", "must be a list")
		return nil
	}
	if len(items) == 0 {
		v.errorf("providers", "must not be empty")
		return nil
	}

	var providers []domain.Provider
	seen := make(map[domain.Provider]bool, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			v.errorf(fmt.Sprintf("providers[%d]", i), "must be a string")
			continue
		}
		p, ok := domain.ParseProvider(s)
		if !ok {
			v.errorf(fmt.Sprintf("providers[%d]", i), "unsupported provider %q (supported: cloudflare, route53)", s)
			continue
		}
		if seen[p] {
			v.errorf(fmt.Sprintf("providers[%d]", i), "duplicate provider %q", p)
			continue
		}
		seen[p] = true
		providers = append(providers, p)
	}
	return providers
}

func (v *fileValidator) nameservers(raw map[string]any) []string {
	nsRaw, ok := raw["nameservers"]
	if !ok {
		return nil
	}
	items, ok := nsRaw.([]any)
	if !ok {
		v.errorf("nameservers", "must be a list")
		return nil
	}
	if len(items) == 0 {
		v.errorf("nameservers", "must not be empty when present")
		return nil
	}
	var out []string
	for i, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			v.errorf(fmt.Sprintf("nameservers[%d]", i), "must be a non-blank string")
			continue
		}
		out = append(out, s)
	}
	return out
}

// tunnels merges zone-local tunnel entries over the global mapping. The
// returned map is always usable, even when entries were rejected.
func (v *fileValidator) tunnels(raw map[string]any, providers []domain.Provider, global map[string]domain.Tunnel) map[string]domain.Tunnel {
	merged := make(map[string]domain.Tunnel, len(global))
	for name, t := range global {
		merged[name] = t
	}

	tRaw, ok := raw["tunnels"]
	if !ok {
		return merged
	}
	if !hasProvider(providers, domain.ProviderCloudflare) {
		v.warnf("tunnels", "tunnels require the cloudflare provider; zone providers are %v", providers)
	}
	entries, ok := tRaw.(map[string]any)
	if !ok {
		v.errorf("tunnels", "must be a mapping of tunnel name to tunnel definition")
		return merged
	}
	for name, entry := range entries {
		em, ok := entry.(map[string]any)
		if !ok {
			v.errorf("tunnels."+name, "must be an object with a tunnel_id")
			continue
		}
		id, ok := em["tunnel_id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			v.errorf("tunnels."+name+".tunnel_id", "must be a non-empty string")
			continue
		}
		merged[name] = domain.Tunnel{ID: id}
	}
	return merged
}

func (v *fileValidator) records(raw map[string]any, zoneName string, providers []domain.Provider, tunnels map[string]domain.Tunnel) []domain.RecordSpec {
	rRaw, ok := raw["records"]
	if !ok {
		v.errorf("records", "required field is missing")
		return nil
	}
	items, ok := rRaw.([]any)
	if !ok {
		v.errorf("records", "must be a sequence")
		return nil
	}

	var specs []domain.RecordSpec
	seen := make(map[domain.RecordKey]int)
	for i, item := range items {
		rm, ok := item.(map[string]any)
		if !ok {
			v.errorf(fmt.Sprintf("records[%d]", i), "must be a mapping")
			continue
		}
		spec := v.record(i, rm, providers, tunnels)
		if spec == nil {
			continue
		}
		specs = append(specs, *spec)

		// duplicate desired-key detection; needs a resolvable zone name
		if zoneName == "" {
			continue
		}
		keys, err := spec.Keys(zoneName)
		if err != nil {
			continue
		}
		for _, k := range keys {
			if first, dup := seen[k]; dup {
				v.errorf(fmt.Sprintf("records[%d]", i), "duplicate record %q (first defined in records[%d])", k, first)
				continue
			}
			seen[k] = i
		}
	}
	return specs
}

// record validates one record entry. Returns nil only when the entry is too
// malformed to represent (missing type or name); otherwise the best-effort
// spec is returned alongside whatever errors accumulated.
func (v *fileValidator) record(i int, m map[string]any, providers []domain.Provider, tunnels map[string]domain.Tunnel) *domain.RecordSpec {
	field := func(name string) string { return fmt.Sprintf("records[%d].%s", i, name) }

	typRaw, ok := m["type"].(string)
	if !ok || strings.TrimSpace(typRaw) == "" {
		v.errorf(field("type"), "required and must be a non-empty string")
		return nil
	}
	rtype := domain.ParseRecordType(typRaw)

	name, ok := m["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		v.errorf(field("name"), "required and must be a non-blank string")
		return nil
	}

	spec := &domain.RecordSpec{Type: rtype, Name: name}

	if sidRaw, present := m["set_identifier"]; present {
		sid, ok := sidRaw.(string)
		if !ok {
			v.errorf(field("set_identifier"), "must be a string")
		} else {
			spec.SetIdentifier = sid
		}
	}

	valuesPresent := false
	valuesParsed := false
	if vRaw, present := m["values"]; present {
		valuesPresent = true
		vals, ok := stringList(vRaw)
		if !ok {
			v.errorf(field("values"), "must be a list of non-blank strings")
		} else {
			valuesParsed = true
			spec.Values = vals
		}
	}

	proxiedPresent := false
	proxiedOn := false
	if pRaw, present := m["proxied"]; present {
		proxiedPresent = true
		b, ok := pRaw.(bool)
		if !ok {
			v.errorf(field("proxied"), "must be a boolean")
		} else {
			proxiedOn = b
			spec.Proxied = &b
		}
	}

	switch rtype {
	case domain.TypeMX:
		spec.MXValues = v.mxValues(i, m)
	case domain.TypeTUNNEL:
		spec.Tunnel = v.tunnelRef(i, m, providers, tunnels)
		// tunnels carry no literal values and are implicitly always proxied
		if valuesPresent {
			v.warnf(field("values"), "ignored on TUNNEL records")
			spec.Values = nil
		}
		if proxiedPresent {
			v.warnf(field("proxied"), "ignored on TUNNEL records (tunnels are always proxied)")
			spec.Proxied = nil
		}
	default:
		// a record with no literal content expands to zero desired keys,
		// which would mark every live record at that name for deletion
		if !valuesPresent {
			v.errorf(field("values"), "required for %s records", rtype)
		} else if valuesParsed && len(spec.Values) == 0 {
			v.errorf(field("values"), "must not be empty")
		}
	}

	if rtype != domain.TypeTUNNEL && proxiedPresent {
		if !hasProvider(providers, domain.ProviderCloudflare) {
			v.warnf(field("proxied"), "ignored: zone providers do not include cloudflare")
		}
		if proxiedOn && !rtype.Proxiable() {
			v.errorf(field("proxied"), "%s records cannot be proxied; only A, AAAA and CNAME can", rtype)
		}
	}

	return spec
}

func (v *fileValidator) mxValues(i int, m map[string]any) []domain.MXValue {
	field := fmt.Sprintf("records[%d].mx_records", i)

	mxRaw, present := m["mx_records"]
	if !present {
		v.errorf(field, "required for MX records")
		return nil
	}
	items, ok := mxRaw.([]any)
	if !ok {
		v.errorf(field, "must be a list")
		return nil
	}
	if len(items) == 0 {
		v.errorf(field, "must not be empty")
		return nil
	}

	var out []domain.MXValue
	for j, item := range items {
		entryField := fmt.Sprintf("%s[%d]", field, j)
		em, ok := item.(map[string]any)
		if !ok {
			v.errorf(entryField, "must be an object with priority and value")
			continue
		}
		prio, ok := asInt(em["priority"])
		if !ok {
			v.errorf(entryField+".priority", "must be an integer")
			continue
		}
		val, ok := em["value"].(string)
		if !ok || strings.TrimSpace(val) == "" {
			v.errorf(entryField+".value", "must be a non-blank string")
			continue
		}
		out = append(out, domain.MXValue{Priority: prio, Value: val})
	}
	return out
}

func (v *fileValidator) tunnelRef(i int, m map[string]any, providers []domain.Provider, tunnels map[string]domain.Tunnel) *domain.TunnelRef {
	field := func(name string) string { return fmt.Sprintf("records[%d].%s", i, name) }

	if !hasProvider(providers, domain.ProviderCloudflare) {
		v.errorf(field("type"), "TUNNEL records require the cloudflare provider")
	}

	tRaw, present := m["tunnel"]
	if !present {
		v.errorf(field("tunnel"), "required for TUNNEL records")
		return nil
	}
	tm, ok := tRaw.(map[string]any)
	if !ok {
		v.errorf(field("tunnel"), "must be an object with name and service")
		return nil
	}

	ref := &domain.TunnelRef{}

	name, ok := tm["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		v.errorf(field("tunnel.name"), "must be a non-blank string")
	} else {
		ref.Name = name
		if _, defined := tunnels[name]; !defined {
			v.referrorf(field("tunnel.name"), "tunnel %q is not defined in the zone or global tunnel mapping", name)
		}
	}

	service, ok := tm["service"].(string)
	if !ok || strings.TrimSpace(service) == "" {
		v.errorf(field("tunnel.service"), "must be a non-blank string")
	} else {
		ref.Service = service
		if !validTunnelService(service) {
			v.errorf(field("tunnel.service"), "%q must start with one of %s", service, strings.Join(domain.TunnelServiceSchemes, ", "))
		}
	}

	return ref
}

func validTunnelService(service string) bool {
	for _, scheme := range domain.TunnelServiceSchemes {
		if strings.HasPrefix(service, scheme) {
			return true
		}
	}
	return false
}

func hasProvider(providers []domain.Provider, want domain.Provider) bool {
	for _, p := range providers {
		if p == want {
			return true
		}
	}
	return false
}

// stringList converts a raw YAML sequence to a slice of non-blank strings.
// Returns ok=false when the value is not a sequence or any element is not a
// non-blank string.
func stringList(val any) ([]string, bool) {
	items, ok := val.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// asInt accepts the integer types the YAML parser may produce.
func asInt(val any) (int, bool) {
	switch n := val.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
