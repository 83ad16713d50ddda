package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

func (ctx *tradingContext) iGenerateAMerchantFor(settlement string) error {
	ctx.merchant, ctx.err = ctx.engine.GenerateRandomMerchant(context.Background(), settlement)
	return nil
}

func (ctx *tradingContext) theMerchantBaseSkillShouldBe(skill int) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if ctx.merchant.BaseSkill != skill {
		return fmt.Errorf("expected base skill %d, got %d", skill, ctx.merchant.BaseSkill)
	}
	return nil
}

func (ctx *tradingContext) theMerchantHagglingSkillShouldBe(skill int) error {
	if err := ctx.noError(); err != nil {
		return err
	}
	if ctx.merchant.HagglingSkill != skill {
		return fmt.Errorf("expected haggling skill %d, got %d", skill, ctx.merchant.HagglingSkill)
	}
	return nil
}

func registerMerchantSteps(sc *godog.ScenarioContext, ctx *tradingContext) {
	sc.Step(`^I generate a merchant for "([^"]*)"$`, ctx.iGenerateAMerchantFor)
	sc.Step(`^the merchant base skill should be (\d+)$`, ctx.theMerchantBaseSkillShouldBe)
	sc.Step(`^the merchant haggling skill should be (\d+)$`, ctx.theMerchantHagglingSkillShouldBe)
}
