package multas

// Action names a user operation. The value doubles as the activity log tag.
type Action string

const (
	ActionCreate           Action = "criar_multa"
	ActionEdit             Action = "editar_multa"
	ActionDelete           Action = "excluir_multa"
	ActionMarkPaid         Action = "marcar_pago"
	ActionUnmarkPaid       Action = "desmarcar_pago"
	ActionMarkComplete     Action = "marcar_concluido"
	ActionUndoComplete     Action = "desfazer_conclusao"
	ActionIndicate         Action = "indicar_motorista"
	ActionUndoIndication   Action = "desfazer_indicacao"
	ActionRefuseIndication Action = "recusar_indicacao"
	ActionLogin            Action = "login"
	ActionLogout           Action = "logout"
)

var actionLabels = map[Action]string{
	ActionCreate:           "Criou Multa",
	ActionEdit:             "Editou Multa",
	ActionDelete:           "Excluiu Multa",
	ActionMarkPaid:         "Marcou como Pago",
	ActionUnmarkPaid:       "Desmarcou Pagamento",
	ActionMarkComplete:     "Marcou como Concluído",
	ActionUndoComplete:     "Desfez Conclusão",
	ActionIndicate:         "Indicou Motorista",
	ActionUndoIndication:   "Desfez Indicação",
	ActionRefuseIndication: "Recusou Indicação",
	ActionLogin:            "Fez Login",
	ActionLogout:           "Fez Logout",
}

// Label is the display text of the action; unknown actions show their raw tag.
func (a Action) Label() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return string(a)
}

type transition struct {
	guard func(m Multa) bool
	apply func(m Multa, today Date) Patch
}

// transitions is the closed table of status-changing actions. Create, edit and delete
// replace whole records and are handled by the service directly.
var transitions = map[Action]transition{
	ActionMarkPaid: {
		guard: boletoIn(BoletoDisponivel),
		apply: func(m Multa, _ Date) Patch {
			switch m.Liability {
			case LiabilityEmpresa:
				return boletoPatch(BoletoConcluido)
			case LiabilityMotorista:
				return boletoPatch(BoletoDescontar)
			}
			return boletoPatch(BoletoPago)
		},
	},
	ActionUnmarkPaid: {
		guard: boletoIn(BoletoDescontar, BoletoPago),
		apply: func(m Multa, today Date) Patch {
			return boletoPatch(derivedBoleto(m, today))
		},
	},
	ActionMarkComplete: {
		guard: boletoIn(BoletoDescontar),
		apply: func(Multa, Date) Patch {
			return boletoPatch(BoletoConcluido)
		},
	},
	ActionUndoComplete: {
		guard: boletoIn(BoletoConcluido),
		apply: func(m Multa, today Date) Patch {
			if m.Liability == LiabilityMotorista {
				return boletoPatch(BoletoDescontar)
			}
			return boletoPatch(derivedBoleto(m, today))
		},
	},
	ActionIndicate: {
		guard: driverIndicacaoIn(IndicacaoFaltandoIndicar),
		apply: func(Multa, Date) Patch {
			return indicacaoPatch(IndicacaoIndicado)
		},
	},
	ActionUndoIndication: {
		guard: func(m Multa) bool {
			return m.StatusIndicacao == IndicacaoIndicado || m.StatusIndicacao == IndicacaoRecusado
		},
		apply: func(m Multa, today Date) Patch {
			return indicacaoPatch(DeriveIndicacaoStatus(IndicacaoInput{Deadline: m.ExpiracaoIndicacao}, today))
		},
	},
	ActionRefuseIndication: {
		guard: driverIndicacaoIn(IndicacaoFaltandoIndicar),
		apply: func(Multa, Date) Patch {
			return indicacaoPatch(IndicacaoRecusado)
		},
	},
}

// Transition returns the patch that performing a on m produces, or ErrInvalidTransition
// when the record is not in a state the action accepts.
func Transition(a Action, m Multa, today Date) (Patch, error) {
	t, ok := transitions[a]
	if !ok {
		return Patch{}, ErrInvalidTransition.WithMessagef("ação %q não altera status", a)
	}
	if !t.guard(m) {
		return Patch{}, ErrInvalidTransition.WithMessagef(
			"%s não é permitido para a multa %s (boleto %q, indicação %q, responsabilidade %q)",
			a.Label(), m.AutoInfracao, m.StatusBoleto, m.StatusIndicacao, m.Liability)
	}
	return t.apply(m, today), nil
}

// CanTransition reports whether a's guard accepts m.
func CanTransition(a Action, m Multa) bool {
	t, ok := transitions[a]
	return ok && t.guard(m)
}

func derivedBoleto(m Multa, today Date) BoletoStatus {
	return DeriveBoletoStatus(BoletoInput{Link: m.Boleto, DueDate: m.ExpiracaoBoleto}, today)
}

func boletoIn(states ...BoletoStatus) func(Multa) bool {
	return func(m Multa) bool {
		for _, s := range states {
			if m.StatusBoleto == s {
				return true
			}
		}
		return false
	}
}

func driverIndicacaoIn(states ...IndicacaoStatus) func(Multa) bool {
	return func(m Multa) bool {
		if m.Liability != LiabilityMotorista {
			return false
		}
		for _, s := range states {
			if m.StatusIndicacao == s {
				return true
			}
		}
		return false
	}
}

func boletoPatch(s BoletoStatus) Patch {
	return Patch{StatusBoleto: &s}
}

func indicacaoPatch(s IndicacaoStatus) Patch {
	return Patch{StatusIndicacao: &s}
}

// ApplyPatch returns m with the non-nil fields of p written over it.
func ApplyPatch(m Multa, p Patch) Multa {
	if p.StatusBoleto != nil {
		m.StatusBoleto = *p.StatusBoleto
	}
	if p.StatusIndicacao != nil {
		m.StatusIndicacao = *p.StatusIndicacao
	}
	if p.ComprovantePagamento != nil {
		m.ComprovantePagamento = *p.ComprovantePagamento
	}
	return m
}
