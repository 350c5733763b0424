package contabilidad

import (
	"context"

	"github.com/tu-usuario/compras-pro/internal/application/dto"
	"github.com/tu-usuario/compras-pro/internal/domain/entity"
	"github.com/tu-usuario/compras-pro/internal/domain/repository"
	"github.com/tu-usuario/compras-pro/internal/domain/retencion"
)

// SimularRetencionesUseCase expone el motor puro de retenciones para cotizar
// antes de registrar la factura. No escribe nada.
type SimularRetencionesUseCase struct {
	conceptoRepo repository.ConceptoRetencionRepository
	params       ParametrosTributarios
}

// NewSimularRetencionesUseCase construye el caso de uso.
func NewSimularRetencionesUseCase(conceptoRepo repository.ConceptoRetencionRepository, params ParametrosTributarios) *SimularRetencionesUseCase {
	return &SimularRetencionesUseCase{conceptoRepo: conceptoRepo, params: params}
}

// Simular lee el catálogo y corre el motor con el perfil recibido.
func (uc *SimularRetencionesUseCase) Simular(ctx context.Context, in dto.SimularRetencionesRequest) ([]dto.RetencionResponse, error) {
	conceptos, err := uc.conceptoRepo.ListarActivos()
	if err != nil {
		return nil, err
	}
	tarifaIVA := in.TarifaIVA
	if tarifaIVA.IsZero() {
		tarifaIVA = uc.params.TarifaIVA
	}
	resultados, err := retencion.Calcular(retencion.CalculoInput{
		Base:      in.Base,
		TarifaIVA: tarifaIVA,
		Perfil: entity.PerfilTributario{
			TipoPersona:      in.Perfil.TipoPersona,
			DeclaranteRenta:  in.Perfil.DeclaranteRenta,
			Autorretenedor:   in.Perfil.Autorretenedor,
			Regimen:          in.Perfil.Regimen,
			InscritoICALocal: in.Perfil.InscritoICALocal,
		},
		TipoTransaccion: in.TipoTransaccion,
		Conceptos:       conceptos,
		ValorUVT:        uc.params.ValorUVT,
		CodigoMunicipio: uc.params.CodigoMunicipio,
	})
	if err != nil {
		return nil, err
	}
	return toRetencionResponses(resultados), nil
}
