package factory

// Available lists provider ids by capability, in registry order.
type Available struct {
	STT []string `json:"stt"`
	LLM []string `json:"llm"`
}

// Available reports which providers offer STT and LLM models. It reads the
// static model catalogs only and never loads a module.
func (r *Registry) Available() Available {
	out := Available{STT: []string{}, LLM: []string{}}
	seenSTT := make(map[string]struct{})
	seenLLM := make(map[string]struct{})
	for _, id := range r.order {
		p := r.entries[id]
		if len(p.STTModels) > 0 {
			if _, ok := seenSTT[id]; !ok {
				seenSTT[id] = struct{}{}
				out.STT = append(out.STT, id)
			}
		}
		if len(p.LLMModels) > 0 {
			if _, ok := seenLLM[id]; !ok {
				seenLLM[id] = struct{}{}
				out.LLM = append(out.LLM, id)
			}
		}
	}
	return out
}

// AvailableProviders lists the STT and LLM capable providers of the default
// table.
func AvailableProviders() Available {
	return providers.Available()
}
